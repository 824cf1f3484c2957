package driven

import (
	"context"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

// ReportHistoryStore records generated reports.
type ReportHistoryStore interface {
	// Record appends a history entry.
	Record(ctx context.Context, rec domain.ReportRecord) error

	// List returns the most recent entries first, at most limit entries.
	// A limit of zero or less returns every entry.
	List(ctx context.Context, limit int) ([]domain.ReportRecord, error)
}
