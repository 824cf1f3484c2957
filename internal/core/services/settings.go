package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCompanyName     = "company.name"
	keyCompanyProduct  = "company.product_name"
	keyCompanyTaxID    = "company.tax_id"
	keyCompanyPhone    = "company.phone"
	keyCompanyAddress  = "company.address"
	keyCompanyLogoURL  = "company.logo_url"
	keyStorageBackend  = "storage.backend"
	keyStorageDataDir  = "storage.data_dir"
	keyReportOutputDir = "report.output_dir"
	keyPhotoWorkers    = "photos.max_concurrency"
)

var settingsKeys = []string{
	keyCompanyName,
	keyCompanyProduct,
	keyCompanyTaxID,
	keyCompanyPhone,
	keyCompanyAddress,
	keyCompanyLogoURL,
	keyStorageBackend,
	keyStorageDataDir,
	keyReportOutputDir,
	keyPhotoWorkers,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Get retrieves current application settings.
// Missing or unrecognised values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Company: domain.CompanyProfile{
			Name:        s.getString(keyCompanyName, defaults.Company.Name),
			ProductName: s.getString(keyCompanyProduct, defaults.Company.ProductName),
			TaxID:       s.configStore.GetString(keyCompanyTaxID),
			Phone:       s.configStore.GetString(keyCompanyPhone),
			Address:     s.configStore.GetString(keyCompanyAddress),
			LogoURL:     s.configStore.GetString(keyCompanyLogoURL),
		},
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		Report: domain.ReportSettings{
			OutputDir: s.getString(keyReportOutputDir, defaults.Report.OutputDir),
		},
		Photos: domain.PhotoSettings{
			MaxConcurrency: s.getInt(keyPhotoWorkers, defaults.Photos.MaxConcurrency),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are nil", domain.ErrInvalidInput)
	}
	if err := s.check(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyCompanyName, settings.Company.Name},
		{keyCompanyProduct, settings.Company.ProductName},
		{keyCompanyTaxID, settings.Company.TaxID},
		{keyCompanyPhone, settings.Company.Phone},
		{keyCompanyAddress, settings.Company.Address},
		{keyCompanyLogoURL, settings.Company.LogoURL},
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyReportOutputDir, settings.Report.OutputDir},
		{keyPhotoWorkers, settings.Photos.MaxConcurrency},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates a single setting by its config key. The resulting
// settings are validated before anything is written.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyCompanyName:
		settings.Company.Name = value
	case keyCompanyProduct:
		settings.Company.ProductName = value
	case keyCompanyTaxID:
		settings.Company.TaxID = value
	case keyCompanyPhone:
		settings.Company.Phone = value
	case keyCompanyAddress:
		settings.Company.Address = value
	case keyCompanyLogoURL:
		settings.Company.LogoURL = value
	case keyStorageBackend:
		backend := domain.StorageBackend(value)
		if !backend.IsValid() {
			return fmt.Errorf("%w: invalid storage backend: %s", domain.ErrInvalidInput, value)
		}
		settings.Storage.Backend = backend
	case keyStorageDataDir:
		settings.Storage.DataDir = value
	case keyReportOutputDir:
		settings.Report.OutputDir = value
	case keyPhotoWorkers:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		settings.Photos.MaxConcurrency = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys lists the settable config keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingsKeys))
	copy(keys, settingsKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// check runs struct validation and reports the first failing field.
func (s *SettingsService) check(settings *domain.AppSettings) error {
	err := s.validate.Struct(settings)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s failed %q", domain.ErrInvalidInput, fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
