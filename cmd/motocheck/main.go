// Command motocheck records motorcycle rental inspections and renders
// them to PDF and XLSX reports.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/motocheck/internal/adapters/driven/assets"
	"github.com/custodia-labs/motocheck/internal/adapters/driven/config/file"
	"github.com/custodia-labs/motocheck/internal/adapters/driven/imageproc"
	"github.com/custodia-labs/motocheck/internal/adapters/driven/storage/badger"
	"github.com/custodia-labs/motocheck/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/motocheck/internal/adapters/driving/cli"
	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
	"github.com/custodia-labs/motocheck/internal/core/services"
	"github.com/custodia-labs/motocheck/internal/logger"
	"github.com/custodia-labs/motocheck/internal/renderers/pdf"
	"github.com/custodia-labs/motocheck/internal/renderers/xlsx"
)

// version is set at build time with -ldflags "-X main.version=1.2.3".
var version string

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore(os.Getenv("MOTOCHECK_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	kv, history, closer, err := openStorage(settings.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Warn("closing storage: %v", err)
		}
	}()
	logger.Debug("storage: %s", settings.Storage.Backend)

	inspectionService := services.NewInspectionService(kv, domain.DefaultSchema())
	photoService := services.NewPhotoService(
		inspectionService, imageproc.NewCompressor(), settings.Photos.MaxConcurrency,
	)
	reportService := services.NewReportService(
		inspectionService,
		settingsService,
		assets.NewLogoProvider(settings.Company.LogoURL, nil),
		history,
		pdf.NewRenderer(),
		xlsx.NewRenderer(),
	)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Inspections: inspectionService,
		Photos:      photoService,
		Reports:     reportService,
		Settings:    settingsService,
	})

	return cli.Execute(ctx)
}

// openStorage opens the configured backend. The returned closer releases it.
func openStorage(cfg domain.StorageSettings) (driven.KeyValueStore, driven.ReportHistoryStore, io.Closer, error) {
	switch cfg.Backend {
	case domain.StorageBackendBadger:
		dir := cfg.DataDir
		if dir != "" {
			dir = filepath.Join(dir, "badger")
		}
		store, err := badger.NewStore(badger.Options{Dir: dir})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening badger store: %w", err)
		}
		return store.KeyValueStore(), store.ReportHistoryStore(), store, nil
	default:
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store.KeyValueStore(), store.ReportHistoryStore(), store, nil
	}
}
