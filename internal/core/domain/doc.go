// Package domain defines the core business entities for motocheck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Schema: The fixed, ordered checklist of inspection items
//   - Inspection: One vehicle inspection record with answers, photos and signatures
//   - EncodedImage: A data-URL image payload
//   - ValidationResult: The outcome of checking a record for report readiness
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
