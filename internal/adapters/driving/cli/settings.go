package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the company profile printed on reports, the storage
backend and report output options.

Use subcommands to change single keys or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by its config key.

Run 'motocheck settings keys' to list the keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the company profile and storage backend.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Company]")
	cmd.Printf("  Name: %s\n", settings.Company.Name)
	cmd.Printf("  Product: %s\n", settings.Company.ProductName)
	cmd.Printf("  Tax ID: %s\n", notSet(settings.Company.TaxID))
	cmd.Printf("  Phone: %s\n", notSet(settings.Company.Phone))
	cmd.Printf("  Address: %s\n", notSet(settings.Company.Address))
	cmd.Printf("  Logo: %s\n", notSet(settings.Company.LogoURL))
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	cmd.Printf("  Data dir: %s\n", notSet(settings.Storage.DataDir))
	cmd.Println()

	cmd.Println("[Report]")
	cmd.Printf("  Output dir: %s\n", settings.Report.OutputDir)
	cmd.Println()

	cmd.Println("[Photos]")
	cmd.Printf("  Max concurrency: %d\n", settings.Photos.MaxConcurrency)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("motocheck Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Company profile
	cmd.Println("Step 1: Company Profile")
	cmd.Println("-----------------------")
	settings.Company.Name = prompt(cmd, reader, "Company name", settings.Company.Name)
	settings.Company.ProductName = prompt(cmd, reader, "Product name", settings.Company.ProductName)
	settings.Company.TaxID = prompt(cmd, reader, "Tax ID", settings.Company.TaxID)
	settings.Company.Phone = prompt(cmd, reader, "Phone", settings.Company.Phone)
	settings.Company.Address = prompt(cmd, reader, "Address", settings.Company.Address)
	settings.Company.LogoURL = prompt(cmd, reader, "Logo URL or file", settings.Company.LogoURL)
	cmd.Println()

	// Step 2: Storage backend
	cmd.Println("Step 2: Storage Backend")
	cmd.Println("-----------------------")
	backends := domain.AllStorageBackends()
	current := 1
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
		if b == settings.Storage.Backend {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	idx := parseChoice(readLine(reader), len(backends), current)
	settings.Storage.Backend = backends[idx-1]
	cmd.Println()

	// Step 3: Reports
	cmd.Println("Step 3: Reports")
	cmd.Println("---------------")
	settings.Report.OutputDir = prompt(cmd, reader, "Output directory", settings.Report.OutputDir)
	workers := prompt(cmd, reader, "Photo workers", strconv.Itoa(settings.Photos.MaxConcurrency))
	if n, err := strconv.Atoi(workers); err == nil {
		settings.Photos.MaxConcurrency = n
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("All settings are valid and saved.")
	return nil
}

// Helper functions.

// prompt shows the current value in brackets; an empty reply keeps it.
func prompt(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	cmd.Printf("%s [%s]: ", label, current)
	if input := readLine(reader); input != "" {
		return input
	}
	return current
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func notSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
