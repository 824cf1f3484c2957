package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/motocheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
	"github.com/custodia-labs/motocheck/internal/core/services"
)

// mockReportService returns a fixed report or error.
type mockReportService struct {
	report  *domain.Report
	records []domain.ReportRecord
	err     error

	generated []domain.ReportFormat
}

func (m *mockReportService) Generate(_ context.Context, format domain.ReportFormat) (*domain.Report, error) {
	m.generated = append(m.generated, format)
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockReportService) Formats() []domain.ReportFormat {
	return []domain.ReportFormat{domain.ReportFormatPDF, domain.ReportFormatXLSX}
}

func (m *mockReportService) History(_ context.Context, _ int) ([]domain.ReportRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

// mockPhotoService records the candidates it was given.
type mockPhotoService struct {
	itemID     string
	candidates []driving.PhotoCandidate
	result     *domain.PhotoBatchResult
	err        error
}

func (m *mockPhotoService) AddPhotos(_ context.Context, itemID string, candidates []driving.PhotoCandidate) (*domain.PhotoBatchResult, error) {
	m.itemID = itemID
	m.candidates = candidates
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// newInspections returns an inspection service backed by memory storage.
func newInspections() *services.InspectionService {
	return services.NewInspectionService(memory.NewKeyValueStore(), domain.DefaultSchema())
}

// newSettings returns a settings service backed by memory storage.
func newSettings() *services.SettingsService {
	return services.NewSettingsService(memory.NewConfigStore())
}

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	if ports.Inspections == nil {
		ports.Inspections = newInspections()
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}
