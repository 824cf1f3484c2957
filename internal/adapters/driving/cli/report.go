package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/reportfile"
)

var (
	reportFormat    string
	reportOutputDir string
	historyLimit    int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the inspection",
}

var reportGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the inspection to a file",
	Long: `Render the inspection in progress.

PDF reports need a complete inspection: identity details, the four
general photos, every rated item and both signatures. The XLSX summary
can be exported at any time.

The file is written to --output-dir, or to report.output_dir from the
settings, as Inspection_<product>_<plate>_<YYYYMMDD>.<ext>.`,
	Args: cobra.NoArgs,
	RunE: runReportGenerate,
}

var reportHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List generated reports",
	Args:  cobra.NoArgs,
	RunE:  runReportHistory,
}

var reportFormatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List available report formats",
	Args:  cobra.NoArgs,
	RunE:  runReportFormats,
}

func init() {
	reportGenerateCmd.Flags().StringVarP(&reportFormat, "format", "f", "pdf", "report format")
	reportGenerateCmd.Flags().StringVarP(&reportOutputDir, "output-dir", "d", "", "directory to write the report to")
	reportHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of entries (0 for all)")
	reportCmd.AddCommand(reportGenerateCmd, reportHistoryCmd, reportFormatsCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportGenerate(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	dir, err := reportfile.OutputDir(reportOutputDir, settingsService)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	format := domain.ReportFormat(strings.ToLower(reportFormat))
	report, err := reportService.Generate(cmd.Context(), format)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			cmd.Println("Inspection is not ready for a report")
			cmd.Printf("  Reason: %s\n", verr.Result.Reason)
			cmd.Printf("  Fix:    %s\n", verr.Result.Focus)
		}
		return fmt.Errorf("failed to generate report: %w", err)
	}

	path, err := reportfile.Write(dir, report)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	cmd.Printf("Report written to %s\n", path)
	if report.Pages > 0 {
		cmd.Printf("  %d pages, %s\n", report.Pages, formatBytes(len(report.Data)))
	}
	return nil
}

func runReportHistory(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	records, err := reportService.History(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(records) == 0 {
		cmd.Println("No reports generated yet")
		return nil
	}

	for _, r := range records {
		cmd.Printf("%s  %-4s  %s  (%d pages, %s)\n",
			r.GeneratedAt.Local().Format("2006-01-02 15:04"),
			r.Format, r.FileName, r.Pages, formatBytes(r.SizeBytes))
	}
	return nil
}

func runReportFormats(cmd *cobra.Command, _ []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	for _, f := range reportService.Formats() {
		line := fmt.Sprintf("%-5s %s", f, f.MIMEType())
		if f.RequiresValidation() {
			line += " (complete inspection required)"
		}
		cmd.Println(line)
	}
	return nil
}
