package services

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
	"github.com/custodia-labs/motocheck/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService renders the current inspection through registered renderers.
type ReportService struct {
	inspections driving.InspectionService
	settings    driving.SettingsService
	renderers   map[domain.ReportFormat]driven.ReportRenderer
	assets      driven.HeaderAssetProvider
	history     driven.ReportHistoryStore
	now         func() time.Time

	running atomic.Bool
}

// NewReportService creates a new report service.
// assets and history may be nil.
func NewReportService(
	inspections driving.InspectionService,
	settings driving.SettingsService,
	assets driven.HeaderAssetProvider,
	history driven.ReportHistoryStore,
	renderers ...driven.ReportRenderer,
) *ReportService {
	byFormat := make(map[domain.ReportFormat]driven.ReportRenderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	return &ReportService{
		inspections: inspections,
		settings:    settings,
		renderers:   byFormat,
		assets:      assets,
		history:     history,
		now:         time.Now,
	}
}

// Formats lists the formats a renderer is registered for.
func (s *ReportService) Formats() []domain.ReportFormat {
	formats := make([]domain.ReportFormat, 0, len(s.renderers))
	for f := range s.renderers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Generate renders the current record. Only one generation runs at a
// time; a concurrent call fails with domain.ErrReportInProgress.
func (s *ReportService) Generate(ctx context.Context, format domain.ReportFormat) (*domain.Report, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}

	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrReportInProgress
	}
	defer s.running.Store(false)

	logger.Section("Report")
	defer logger.Timed("generate " + format.String())()

	record, err := s.inspections.Current(ctx)
	if err != nil {
		return nil, err
	}

	if format.RequiresValidation() {
		if res := domain.Validate(record, s.inspections.Schema()); !res.OK {
			logger.Info("report blocked: %s", res.Reason)
			return nil, res.Err()
		}
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	generatedAt := s.now()
	out, err := renderer.Render(ctx, &driven.RenderInput{
		Inspection:  record,
		Schema:      s.inspections.Schema(),
		Company:     settings.Company,
		Logo:        s.logo(ctx),
		GeneratedAt: generatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", format, err)
	}

	report := &domain.Report{
		FileName:    domain.ReportFileName(settings.Company.ProductName, record.Identity.Plate, record.Date, format),
		Format:      format,
		Data:        out.Data,
		Pages:       out.Pages,
		GeneratedAt: generatedAt,
	}
	logger.Info("rendered %s (%d bytes, %d pages)", report.FileName, len(report.Data), report.Pages)

	if s.history != nil {
		rec := domain.ReportRecord{
			InspectionID: record.ID,
			FileName:     report.FileName,
			Format:       format,
			Pages:        report.Pages,
			SizeBytes:    len(report.Data),
			GeneratedAt:  generatedAt,
		}
		if err := s.history.Record(ctx, rec); err != nil {
			logger.Warn("recording report history: %v", err)
		}
	}

	return report, nil
}

// History returns recent report generations, newest first.
func (s *ReportService) History(ctx context.Context, limit int) ([]domain.ReportRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.List(ctx, limit)
}

// logo fetches the header logo. Any failure omits the logo.
func (s *ReportService) logo(ctx context.Context) []byte {
	if s.assets == nil {
		return nil
	}
	data, ok, err := s.assets.Logo(ctx)
	if err != nil {
		logger.Warn("logo unavailable, continuing without it: %v", err)
		return nil
	}
	if !ok {
		return nil
	}
	return data
}
