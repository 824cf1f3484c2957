package driving

import (
	"context"

	"github.com/custodia-labs/motocheck/internal/core/domain"
)

// InspectionService manages the current inspection record.
// Every mutation is persisted before it returns.
type InspectionService interface {
	// Current returns a copy of the current record, loading or creating it.
	Current(ctx context.Context) (*domain.Inspection, error)

	// Schema returns the checklist the record is validated against.
	Schema() *domain.Schema

	// SetIdentityField writes one identity field.
	SetIdentityField(ctx context.Context, field domain.IdentityField, value string) error

	// SetDate sets the inspection date.
	SetDate(ctx context.Context, date domain.Date) error

	// SetAnswer records the answer for a checklist item.
	SetAnswer(ctx context.Context, itemID string, answer domain.Answer) error

	// SetFinalNotes writes the free-text notes.
	SetFinalNotes(ctx context.Context, notes string) error

	// AppendPhotos attaches already-encoded photos to an item and
	// returns how many were kept under the cap.
	AppendPhotos(ctx context.Context, itemID string, photos []domain.EncodedImage) (int, error)

	// RemovePhoto deletes one photo of an item by index.
	RemovePhoto(ctx context.Context, itemID string, index int) error

	// SetSignature stores a signature. An empty payload clears it.
	SetSignature(ctx context.Context, role domain.SignatureRole, sig domain.EncodedImage) error

	// Prefill copies renter and motorcycle details into the record.
	Prefill(ctx context.Context, p domain.Prefill) error

	// Reset discards the record and its persisted copy.
	Reset(ctx context.Context) error

	// Validate checks whether the record is ready for a report.
	Validate(ctx context.Context) (domain.ValidationResult, error)

	// Status summarises completion progress.
	Status(ctx context.Context) (domain.Completion, error)
}
