package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownItem indicates a checklist item id that is not in the schema.
	ErrUnknownItem = errors.New("unknown checklist item")

	// ErrUnknownField indicates an identity field name that does not exist.
	ErrUnknownField = errors.New("unknown identity field")

	// ErrWrongAnswerKind indicates an answer whose kind does not match the item.
	ErrWrongAnswerKind = errors.New("answer kind does not match item")

	// ErrInvalidPayload indicates an image payload that is not a data:image/ URL.
	ErrInvalidPayload = errors.New("invalid image payload")

	// Photo Errors.

	// ErrNotImage indicates a selected file does not declare an image media type.
	ErrNotImage = errors.New("file is not an image")

	// ErrNoValidImages indicates a photo batch contained no acceptable image.
	ErrNoValidImages = errors.New("no valid images selected")

	// ErrPhotoLimitExceeded indicates a batch would push an item over the photo cap.
	ErrPhotoLimitExceeded = errors.New("photo limit exceeded")

	// ErrPhotoIndexOutOfRange indicates a remove request for a photo that does not exist.
	ErrPhotoIndexOutOfRange = errors.New("photo index out of range")

	// Report Errors.

	// ErrValidation indicates the inspection is not ready for a report.
	ErrValidation = errors.New("inspection incomplete")

	// ErrReportInProgress indicates a report is already being generated.
	ErrReportInProgress = errors.New("report generation in progress")

	// ErrUnsupportedFormat indicates no renderer is registered for a report format.
	ErrUnsupportedFormat = errors.New("unsupported report format")
)

// PhotoLimitError describes a rejected photo batch.
type PhotoLimitError struct {
	ItemID   string
	Limit    int
	Selected int
	Existing int
}

func (e *PhotoLimitError) Error() string {
	return fmt.Sprintf("photo limit exceeded for %s: limit %d, selected %d, already attached %d",
		e.ItemID, e.Limit, e.Selected, e.Existing)
}

// Unwrap allows errors.Is(err, ErrPhotoLimitExceeded).
func (e *PhotoLimitError) Unwrap() error {
	return ErrPhotoLimitExceeded
}

// ValidationError carries the first failing validation rule.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Result.Reason)
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
