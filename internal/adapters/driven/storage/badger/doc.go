// Package badger provides a BadgerDB-based implementation of driven port interfaces.
//
// It is the alternative to the SQLite store, selected with
// storage.backend = "badger". The same interfaces are exposed:
//
//   - KeyValueStore: JSON documents keyed by string
//   - ReportHistoryStore: Generated report entries under a key prefix
//
// # Data Location
//
// By default, the database directory is ~/.motocheck/data/badger
package badger
