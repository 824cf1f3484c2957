package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

// RenderInput is everything a renderer needs to produce one report.
type RenderInput struct {
	Inspection  *domain.Inspection
	Schema      *domain.Schema
	Company     domain.CompanyProfile
	Logo        []byte
	GeneratedAt time.Time
}

// RenderOutput is the rendered document.
type RenderOutput struct {
	Data  []byte
	Pages int
}

// ReportRenderer renders an inspection into one output format.
type ReportRenderer interface {
	// Format returns the format this renderer produces.
	Format() domain.ReportFormat

	// Render produces the complete document or an error; partial
	// output is never returned.
	Render(ctx context.Context, in *RenderInput) (*RenderOutput, error)
}
