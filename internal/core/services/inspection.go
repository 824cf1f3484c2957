package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
	"github.com/custodia-labs/motocheck/internal/logger"
)

// Ensure InspectionService implements the interface.
var _ driving.InspectionService = (*InspectionService)(nil)

// InspectionService owns the current inspection record. Mutations are
// serialised, applied to a copy, persisted, and only then made current.
type InspectionService struct {
	store  driven.KeyValueStore
	schema *domain.Schema
	now    func() time.Time

	mu      sync.Mutex
	current *domain.Inspection
}

// NewInspectionService creates a new inspection service.
func NewInspectionService(store driven.KeyValueStore, schema *domain.Schema) *InspectionService {
	if schema == nil {
		schema = domain.DefaultSchema()
	}
	return &InspectionService{
		store:  store,
		schema: schema,
		now:    time.Now,
	}
}

// Schema returns the checklist schema.
func (s *InspectionService) Schema() *domain.Schema {
	return s.schema
}

// Current returns a copy of the current record.
func (s *InspectionService) Current(ctx context.Context) (*domain.Inspection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	return in.Clone(), nil
}

// SetIdentityField writes one identity field.
func (s *InspectionService) SetIdentityField(ctx context.Context, field domain.IdentityField, value string) error {
	return s.mutate(ctx, func(in *domain.Inspection) error {
		return in.SetIdentity(field, value)
	})
}

// SetDate sets the inspection date.
func (s *InspectionService) SetDate(ctx context.Context, date domain.Date) error {
	return s.mutate(ctx, func(in *domain.Inspection) error {
		in.Date = date
		return nil
	})
}

// SetAnswer records the answer for a checklist item.
func (s *InspectionService) SetAnswer(ctx context.Context, itemID string, answer domain.Answer) error {
	return s.mutate(ctx, func(in *domain.Inspection) error {
		return in.SetAnswer(s.schema, itemID, answer)
	})
}

// SetFinalNotes writes the free-text notes.
func (s *InspectionService) SetFinalNotes(ctx context.Context, notes string) error {
	return s.mutate(ctx, func(in *domain.Inspection) error {
		in.FinalNotes = notes
		return nil
	})
}

// AppendPhotos attaches encoded photos to an item, keeping the oldest
// entries if the cap would be exceeded.
func (s *InspectionService) AppendPhotos(ctx context.Context, itemID string, photos []domain.EncodedImage) (int, error) {
	var added int
	err := s.mutate(ctx, func(in *domain.Inspection) error {
		n, err := in.AddPhotos(s.schema, itemID, photos)
		added = n
		return err
	})
	if err != nil {
		return 0, err
	}
	if added < len(photos) {
		logger.Warn("%s: kept %d of %d photos, limit is %d", itemID, added, len(photos), domain.MaxPhotosPerItem)
	}
	return added, nil
}

// RemovePhoto deletes one photo of an item.
func (s *InspectionService) RemovePhoto(ctx context.Context, itemID string, index int) error {
	if _, ok := s.schema.Item(itemID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownItem, itemID)
	}
	return s.mutate(ctx, func(in *domain.Inspection) error {
		return in.RemovePhoto(itemID, index)
	})
}

// SetSignature stores or clears a signature.
func (s *InspectionService) SetSignature(ctx context.Context, role domain.SignatureRole, sig domain.EncodedImage) error {
	return s.mutate(ctx, func(in *domain.Inspection) error {
		return in.SetSignature(role, sig)
	})
}

// Prefill copies renter and motorcycle details into the record.
func (s *InspectionService) Prefill(ctx context.Context, p domain.Prefill) error {
	return s.mutate(ctx, func(in *domain.Inspection) error {
		p.Apply(in)
		return nil
	})
}

// Reset discards the record and removes its persisted copy.
// The next access starts a fresh record dated today.
func (s *InspectionService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, domain.InspectionKey); err != nil {
		return fmt.Errorf("removing inspection: %w", err)
	}
	s.current = nil
	logger.Info("inspection reset")
	return nil
}

// Validate checks whether the record is ready for a report.
func (s *InspectionService) Validate(ctx context.Context) (domain.ValidationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := s.loadLocked(ctx)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	return domain.Validate(in, s.schema), nil
}

// Status summarises completion progress.
func (s *InspectionService) Status(ctx context.Context) (domain.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := s.loadLocked(ctx)
	if err != nil {
		return domain.Completion{}, err
	}
	return in.Completion(s.schema), nil
}

// mutate applies fn to a copy of the record and persists it.
// The in-memory record only changes if the write succeeds.
func (s *InspectionService) mutate(ctx context.Context, fn func(*domain.Inspection) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}

	next := in.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.UpdatedAt = s.now().UTC()

	if err := s.persistLocked(ctx, next); err != nil {
		return err
	}
	s.current = next
	return nil
}

// loadLocked returns the cached record, rehydrating or creating it on
// first use. Malformed stored data is discarded.
func (s *InspectionService) loadLocked(ctx context.Context) (*domain.Inspection, error) {
	if s.current != nil {
		return s.current, nil
	}

	raw, ok, err := s.store.Get(ctx, domain.InspectionKey)
	if err != nil {
		return nil, fmt.Errorf("loading inspection: %w", err)
	}

	if ok {
		in, decodeErr := decodeInspection(raw)
		if decodeErr == nil {
			s.current = in
			logger.Debug("inspection %s loaded", in.ID)
			return in, nil
		}
		logger.Warn("discarding malformed inspection data: %v", decodeErr)
		if err := s.store.Remove(ctx, domain.InspectionKey); err != nil {
			return nil, fmt.Errorf("removing malformed inspection: %w", err)
		}
	}

	s.current = domain.NewInspection(uuid.NewString(), domain.NewDate(s.now()))
	logger.Debug("started inspection %s", s.current.ID)
	return s.current, nil
}

func (s *InspectionService) persistLocked(ctx context.Context, in *domain.Inspection) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding inspection: %w", err)
	}
	if err := s.store.Set(ctx, domain.InspectionKey, data); err != nil {
		return fmt.Errorf("saving inspection: %w", err)
	}
	return nil
}

var errNotObject = errors.New("stored inspection is not a JSON object")

func decodeInspection(raw json.RawMessage) (*domain.Inspection, error) {
	var in domain.Inspection
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	// "null" and other non-object values unmarshal without error.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil || probe == nil {
		return nil, errNotObject
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	in.Normalize()
	return &in, nil
}
