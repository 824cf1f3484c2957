// Package mcp provides an MCP (Model Context Protocol) server adapter for motocheck.
// It lets AI assistants read and fill the inspection in progress and
// render reports from it.
package mcp

import "errors"

// ErrMissingInspectionService is returned when the inspection service is not provided.
var ErrMissingInspectionService = errors.New("mcp: inspection service is required")
