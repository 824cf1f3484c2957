package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

// PhotoCandidate is one file offered for attachment.
type PhotoCandidate struct {
	// Name identifies the file in messages.
	Name string

	// MediaType is the declared type, e.g. "image/jpeg".
	MediaType string

	// Open returns the file contents.
	Open func() (io.ReadCloser, error)
}

// PhotoService runs the photo ingestion pipeline.
type PhotoService interface {
	// AddPhotos validates, compresses and attaches a batch of candidates
	// to a checklist item.
	AddPhotos(ctx context.Context, itemID string, candidates []PhotoCandidate) (*domain.PhotoBatchResult, error)
}
