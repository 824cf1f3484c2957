// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - KeyValueStore: JSON persistence of the inspection record (SQLite or Badger)
//   - ConfigStore: Application configuration
//   - ImageCompressor: Resizes and recompresses photos before they are stored
//   - ReportRenderer: Turns an inspection into a document (PDF, XLSX)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HeaderAssetProvider: Supplies the company logo. Without it, reports omit the logo.
//   - ReportHistoryStore: Records generated reports. Without it, no history is kept.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or renderer package
package driven
