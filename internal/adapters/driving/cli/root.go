// Package cli provides the cobra command tree for motocheck.
// It is a driving adapter: every command talks to the core through the
// driving ports set with SetServices.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
	"github.com/custodia-labs/motocheck/internal/logger"
)

var (
	inspectionService driving.InspectionService
	photoService      driving.PhotoService
	reportService     driving.ReportService
	settingsService   driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "motocheck",
	Short: "Motorcycle rental inspections",
	Long: `motocheck records motorcycle rental inspections.

It keeps one inspection in progress: identity details, a checklist of
rated and free-text items, photos, and the signatures of the inspector
and the renter. When the record is complete it renders a paginated PDF
report, or an XLSX summary at any time.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// Services bundles the driving ports the commands use.
type Services struct {
	Inspections driving.InspectionService
	Photos      driving.PhotoService
	Reports     driving.ReportService
	Settings    driving.SettingsService
}

// SetServices injects the core services used by the commands.
func SetServices(s Services) {
	inspectionService = s.Inspections
	photoService = s.Photos
	reportService = s.Reports
	settingsService = s.Settings
}

// Execute runs the root command. Cancelling ctx stops long-running
// commands such as 'photo watch' and 'mcp serve'.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
