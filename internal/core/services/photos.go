package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
	"github.com/custodia-labs/motocheck/internal/logger"
)

// Ensure PhotoService implements the interface.
var _ driving.PhotoService = (*PhotoService)(nil)

// maxPhotoFileBytes bounds how much of one candidate is read.
const maxPhotoFileBytes = 50 << 20

// PhotoService turns selected files into stored photo payloads.
type PhotoService struct {
	inspections driving.InspectionService
	compressor  driven.ImageCompressor
	options     driven.CompressionOptions
	concurrency int
}

// NewPhotoService creates a new photo service. A nil compressor stores
// photos as selected.
func NewPhotoService(inspections driving.InspectionService, compressor driven.ImageCompressor, concurrency int) *PhotoService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PhotoService{
		inspections: inspections,
		compressor:  compressor,
		options:     driven.DefaultCompressionOptions(),
		concurrency: concurrency,
	}
}

// photoOutcome is the per-candidate result of processing.
type photoOutcome struct {
	payload domain.EncodedImage
	warning string
	err     error
}

// AddPhotos validates, compresses and attaches a batch of candidates.
//
// Non-image candidates are rejected individually. If the remaining
// candidates would push the item past domain.MaxPhotosPerItem, the whole
// batch is rejected with a *domain.PhotoLimitError and nothing is added.
// Otherwise every candidate is processed concurrently; a failure affects
// only its own candidate and successful payloads are attached in input order.
func (s *PhotoService) AddPhotos(ctx context.Context, itemID string, candidates []driving.PhotoCandidate) (*domain.PhotoBatchResult, error) {
	if _, ok := s.inspections.Schema().Item(itemID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownItem, itemID)
	}

	result := &domain.PhotoBatchResult{
		ItemID:   itemID,
		Selected: len(candidates),
		Outcome:  domain.BatchFailed,
	}

	valid := make([]driving.PhotoCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !strings.HasPrefix(strings.ToLower(c.MediaType), "image/") {
			result.Rejected = append(result.Rejected, domain.PhotoRejection{
				Name:   c.Name,
				Reason: domain.ErrNotImage.Error(),
			})
			continue
		}
		valid = append(valid, c)
	}

	if len(valid) == 0 {
		return result, domain.ErrNoValidImages
	}

	current, err := s.inspections.Current(ctx)
	if err != nil {
		return nil, err
	}
	existing := len(current.Photos[itemID])
	result.Total = existing
	if existing+len(valid) > domain.MaxPhotosPerItem {
		return result, &domain.PhotoLimitError{
			ItemID:   itemID,
			Limit:    domain.MaxPhotosPerItem,
			Selected: len(valid),
			Existing: existing,
		}
	}

	outcomes := s.process(ctx, valid)

	payloads := make([]domain.EncodedImage, 0, len(outcomes))
	for i, o := range outcomes {
		if o.warning != "" {
			result.Warnings = append(result.Warnings, o.warning)
		}
		if o.err != nil {
			logger.Warn("photo %s failed: %v", valid[i].Name, o.err)
			result.Failed = append(result.Failed, domain.PhotoRejection{
				Name:   valid[i].Name,
				Reason: o.err.Error(),
			})
			continue
		}
		payloads = append(payloads, o.payload)
	}

	if len(payloads) > 0 {
		added, err := s.inspections.AppendPhotos(ctx, itemID, payloads)
		if err != nil {
			return nil, fmt.Errorf("attaching photos: %w", err)
		}
		result.Added = added
		result.Total = existing + added
	}

	switch {
	case result.Added == 0:
		result.Outcome = domain.BatchFailed
	case result.Added == result.Selected:
		result.Outcome = domain.BatchComplete
	default:
		result.Outcome = domain.BatchPartial
	}
	logger.Info("%s: %s", itemID, result.Summary())
	return result, nil
}

// process runs every candidate to completion and returns outcomes in
// input order. No candidate cancels another.
func (s *PhotoService) process(ctx context.Context, candidates []driving.PhotoCandidate) []photoOutcome {
	outcomes := make([]photoOutcome, len(candidates))

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, c := range candidates {
		g.Go(func() error {
			outcomes[i] = s.processOne(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (s *PhotoService) processOne(ctx context.Context, c driving.PhotoCandidate) photoOutcome {
	if err := ctx.Err(); err != nil {
		return photoOutcome{err: err}
	}

	data, err := readCandidate(c)
	if err != nil {
		return photoOutcome{err: err}
	}

	mediaType := c.MediaType
	var warning string
	if s.compressor != nil {
		compressed, compressedType, cerr := s.compressor.Compress(ctx, data, c.MediaType, s.options)
		switch {
		case cerr == nil:
			data, mediaType = compressed, compressedType
		case ctx.Err() != nil:
			return photoOutcome{err: ctx.Err()}
		default:
			warning = fmt.Sprintf("%s: compression failed, storing original: %v", c.Name, cerr)
			logger.Warn("%s", warning)
		}
	}

	payload := domain.EncodeImage(mediaType, data)
	if !payload.IsValid() {
		return photoOutcome{err: fmt.Errorf("%w: %s", domain.ErrInvalidPayload, c.Name), warning: warning}
	}
	return photoOutcome{payload: payload, warning: warning}
}

func readCandidate(c driving.PhotoCandidate) ([]byte, error) {
	if c.Open == nil {
		return nil, fmt.Errorf("%s: no content", c.Name)
	}
	rc, err := c.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", c.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxPhotoFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.Name, err)
	}
	if len(data) > maxPhotoFileBytes {
		return nil, fmt.Errorf("%s: file larger than 50 MiB", c.Name)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty file", c.Name)
	}
	return data, nil
}
