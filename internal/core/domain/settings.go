package domain

const unknownDescription = "Unknown"

// StorageBackend selects the key-value store that holds inspection records.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendSQLite stores records in a SQLite database file.
	StorageBackendSQLite StorageBackend = "sqlite"

	// StorageBackendBadger stores records in a Badger directory.
	StorageBackendBadger StorageBackend = "badger"
)

// AllStorageBackends returns the supported backends, default first.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageBackendSQLite, StorageBackendBadger}
}

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendSQLite, StorageBackendBadger:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendSQLite:
		return "SQLite (single database file)"
	case StorageBackendBadger:
		return "Badger (embedded LSM store)"
	default:
		return unknownDescription
	}
}

// CompanyProfile identifies the rental company on reports.
type CompanyProfile struct {
	Name        string `json:"name" validate:"required,max=120"`
	ProductName string `json:"product_name" validate:"required,max=60"`
	TaxID       string `json:"tax_id" validate:"max=40"`
	Phone       string `json:"phone" validate:"max=40"`
	Address     string `json:"address" validate:"max=200"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url|filepath"`
}

// StorageSettings configures persistence.
type StorageSettings struct {
	Backend StorageBackend `json:"backend" validate:"required,oneof=sqlite badger"`
	DataDir string         `json:"data_dir"`
}

// ReportSettings configures report output.
type ReportSettings struct {
	OutputDir string `json:"output_dir"`
}

// PhotoSettings configures photo ingestion.
type PhotoSettings struct {
	MaxConcurrency int `json:"max_concurrency" validate:"min=1,max=16"`
}

// AppSettings holds all configurable settings.
type AppSettings struct {
	Company CompanyProfile  `json:"company" validate:"required"`
	Storage StorageSettings `json:"storage" validate:"required"`
	Report  ReportSettings  `json:"report"`
	Photos  PhotoSettings   `json:"photos"`
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Company: CompanyProfile{
			Name:        "LocAuto Motorcycle Rental",
			ProductName: "LocAuto",
		},
		Storage: StorageSettings{
			Backend: StorageBackendSQLite,
		},
		Report: ReportSettings{
			OutputDir: ".",
		},
		Photos: PhotoSettings{
			MaxConcurrency: 4,
		},
	}
}
