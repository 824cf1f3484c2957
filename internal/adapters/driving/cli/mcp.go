package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/motocheck/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so an assistant can fill in
the inspection in progress.

By default, the server communicates over stdio using JSON-RPC. Use --port
to serve the streamable HTTP transport instead, for the MCP Inspector web
UI or remote access.

Examples:
  # Stdio mode (default)
  motocheck mcp serve

  # HTTP mode
  motocheck mcp serve --port 8080

Desktop client configuration:
  {
    "mcpServers": {
      "motocheck": {
        "command": "/path/to/motocheck",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Inspections: inspectionService,
		Photos:      photoService,
		Reports:     reportService,
		Settings:    settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
