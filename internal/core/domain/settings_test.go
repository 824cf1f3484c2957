package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageBackend_IsValid(t *testing.T) {
	tests := []struct {
		backend  StorageBackend
		expected bool
	}{
		{StorageBackendSQLite, true},
		{StorageBackendBadger, true},
		{"postgres", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.backend.IsValid())
		})
	}
}

func TestAllStorageBackends(t *testing.T) {
	backends := AllStorageBackends()

	assert.Equal(t, StorageBackendSQLite, backends[0])
	for _, b := range backends {
		assert.True(t, b.IsValid())
	}
}

func TestStorageBackend_Description(t *testing.T) {
	assert.Contains(t, StorageBackendSQLite.Description(), "SQLite")
	assert.Contains(t, StorageBackendBadger.Description(), "Badger")
	assert.Equal(t, unknownDescription, StorageBackend("x").Description())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.NotEmpty(t, s.Company.Name)
	assert.NotEmpty(t, s.Company.ProductName)
	assert.Equal(t, StorageBackendSQLite, s.Storage.Backend)
	assert.Equal(t, 4, s.Photos.MaxConcurrency)
}

func TestReportFormat(t *testing.T) {
	assert.True(t, ReportFormatPDF.IsValid())
	assert.True(t, ReportFormatXLSX.IsValid())
	assert.False(t, ReportFormat("docx").IsValid())
	assert.True(t, ReportFormatPDF.RequiresValidation())
	assert.False(t, ReportFormatXLSX.RequiresValidation())
	assert.Equal(t, "application/pdf", ReportFormatPDF.MIMEType())
}
