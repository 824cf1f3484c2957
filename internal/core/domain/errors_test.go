package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnknownItem", ErrUnknownItem},
		{"ErrUnknownField", ErrUnknownField},
		{"ErrWrongAnswerKind", ErrWrongAnswerKind},
		{"ErrInvalidPayload", ErrInvalidPayload},
		{"ErrNotImage", ErrNotImage},
		{"ErrNoValidImages", ErrNoValidImages},
		{"ErrPhotoLimitExceeded", ErrPhotoLimitExceeded},
		{"ErrPhotoIndexOutOfRange", ErrPhotoIndexOutOfRange},
		{"ErrValidation", ErrValidation},
		{"ErrReportInProgress", ErrReportInProgress},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
}

func TestPhotoLimitError(t *testing.T) {
	err := &PhotoLimitError{ItemID: ItemPhotoFront, Limit: 5, Selected: 3, Existing: 4}

	assert.Contains(t, err.Error(), "limit 5")
	assert.Contains(t, err.Error(), "selected 3")
	assert.Contains(t, err.Error(), "already attached 4")
	assert.True(t, errors.Is(err, ErrPhotoLimitExceeded))

	wrapped := fmt.Errorf("add photos: %w", err)
	var target *PhotoLimitError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, 4, target.Existing)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Result: ValidationResult{Reason: "required field \"Plate\" is empty"}}

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "inspection incomplete: required field \"Plate\" is empty", err.Error())
}
