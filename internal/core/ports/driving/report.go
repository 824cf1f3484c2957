package driving

import (
	"context"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

// ReportService renders the current inspection.
type ReportService interface {
	// Generate renders the current record in the requested format.
	// PDF generation fails with a *domain.ValidationError when the
	// record is incomplete.
	Generate(ctx context.Context, format domain.ReportFormat) (*domain.Report, error)

	// Formats lists the formats a renderer is registered for.
	Formats() []domain.ReportFormat

	// History returns recent generations, newest first. A limit of
	// zero or less returns everything. Without a history store the
	// result is empty.
	History(ctx context.Context, limit int) ([]domain.ReportRecord, error)
}
