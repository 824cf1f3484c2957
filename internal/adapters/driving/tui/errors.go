package tui

import "errors"

// ErrMissingInspectionService is returned when the inspection service is not provided.
var ErrMissingInspectionService = errors.New("tui: inspection service is required")
