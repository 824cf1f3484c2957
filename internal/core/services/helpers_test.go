package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/motocheck/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
	"github.com/custodia-labs/motocheck/internal/core/ports/driving"
)

var errStoreDown = errors.New("store down")

// flakyKV wraps a memory store and fails writes on demand.
type flakyKV struct {
	*memory.KeyValueStore
	mu       sync.Mutex
	failSet  bool
	setCalls int
}

func newFlakyKV() *flakyKV {
	return &flakyKV{KeyValueStore: memory.NewKeyValueStore()}
}

func (f *flakyKV) Set(ctx context.Context, key string, value json.RawMessage) error {
	f.mu.Lock()
	f.setCalls++
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return f.KeyValueStore.Set(ctx, key, value)
}

func (f *flakyKV) setFailing(v bool) {
	f.mu.Lock()
	f.failSet = v
	f.mu.Unlock()
}

// stubCompressor returns fixed output or an error.
type stubCompressor struct {
	mu    sync.Mutex
	calls int
	err   error
	out   []byte
}

func (c *stubCompressor) Compress(_ context.Context, data []byte, mediaType string, _ driven.CompressionOptions) ([]byte, string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return nil, "", c.err
	}
	if c.out != nil {
		return c.out, "image/jpeg", nil
	}
	return data, mediaType, nil
}

// stubRenderer records its input and returns fixed output.
type stubRenderer struct {
	format domain.ReportFormat
	err    error
	block  chan struct{}

	mu    sync.Mutex
	input *driven.RenderInput
}

func (r *stubRenderer) Format() domain.ReportFormat { return r.format }

func (r *stubRenderer) Render(_ context.Context, in *driven.RenderInput) (*driven.RenderOutput, error) {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	r.input = in
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return &driven.RenderOutput{Data: []byte("%PDF-stub"), Pages: 3}, nil
}

func (r *stubRenderer) lastInput() *driven.RenderInput {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.input
}

// stubLogo serves a fixed logo or an error.
type stubLogo struct {
	data []byte
	err  error
}

func (l stubLogo) Logo(context.Context) ([]byte, bool, error) {
	if l.err != nil {
		return nil, false, l.err
	}
	return l.data, l.data != nil, nil
}

func photoPayload(b byte) domain.EncodedImage {
	return domain.EncodeImage("image/jpeg", []byte{0xFF, 0xD8, b})
}

func candidate(name, mediaType string, data []byte) driving.PhotoCandidate {
	return driving.PhotoCandidate{
		Name:      name,
		MediaType: mediaType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// fillComplete drives svc until the record passes validation.
func fillComplete(t *testing.T, svc *InspectionService) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, svc.Prefill(ctx, domain.Prefill{
		Renter: domain.Renter{Name: "Maria Souza", RG: "12.345.678-9"},
		Motorcycle: domain.Motorcycle{
			Model: "CG 160", Plate: "ABC-1234", Color: "Red", Odometer: "15200",
			ChassisNumber: "9C2KC1", EngineNumber: "MTR-77",
		},
	}))
	for _, item := range svc.Schema().Items() {
		if item.Kind == domain.ItemKindRated {
			require.NoError(t, svc.SetAnswer(ctx, item.ID, domain.RatedAnswer(domain.ConditionGood)))
		}
	}
	for _, id := range svc.Schema().MandatoryPhotoItems() {
		_, err := svc.AppendPhotos(ctx, id, []domain.EncodedImage{photoPayload(1)})
		require.NoError(t, err)
	}
	sig := domain.EncodeImage("image/png", []byte{0x89, 'P'})
	require.NoError(t, svc.SetSignature(ctx, domain.SignatureInspector, sig))
	require.NoError(t, svc.SetSignature(ctx, domain.SignatureRenter, sig))
}
