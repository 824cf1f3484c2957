package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/custodia-labs/motocheck/internal/core/domain"
	"github.com/custodia-labs/motocheck/internal/core/ports/driven"
	"github.com/custodia-labs/motocheck/internal/logger"
)

// historyPrefix holds report history entries; the suffix is a
// zero-padded nanosecond timestamp so keys sort chronologically.
const historyPrefix = domain.KeyPrefix + "report_history."

// Store wraps a BadgerDB instance.
type Store struct {
	db   *badger.DB
	path string
}

// Options configures NewStore.
type Options struct {
	// Dir is the database directory. Defaults to ~/.motocheck/data/badger.
	Dir string

	// InMemory keeps everything in RAM. Used by tests.
	InMemory bool
}

// NewStore opens (or creates) a Badger database.
func NewStore(opts Options) (*Store, error) {
	var bopts badger.Options
	path := ":memory:"
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dir := opts.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("getting home directory: %w", err)
			}
			dir = filepath.Join(home, ".motocheck", "data", "badger")
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		bopts = badger.DefaultOptions(dir).WithSyncWrites(true)
		path = dir
	}

	bopts = bopts.WithNumVersionsToKeep(1).WithLogger(badgerLogger{})

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database directory.
func (s *Store) Path() string {
	return s.path
}

// KeyValueStore returns a KeyValueStore interface backed by this store.
func (s *Store) KeyValueStore() driven.KeyValueStore {
	return &kvStore{db: s.db}
}

// ReportHistoryStore returns a ReportHistoryStore interface backed by this store.
func (s *Store) ReportHistoryStore() driven.ReportHistoryStore {
	return &historyStore{db: s.db}
}

// ==================== Key-Value Store ====================

type kvStore struct {
	db *badger.DB
}

var _ driven.KeyValueStore = (*kvStore)(nil)

// Get retrieves a value by key.
func (s *kvStore) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading key %s: %w", key, err)
	}
	return json.RawMessage(value), true, nil
}

// Set stores or replaces a value.
func (s *kvStore) Set(_ context.Context, key string, value json.RawMessage) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

// Remove deletes a key.
func (s *kvStore) Remove(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("removing key %s: %w", key, err)
	}
	return nil
}

// ==================== Report History Store ====================

type historyStore struct {
	db *badger.DB
}

var _ driven.ReportHistoryStore = (*historyStore)(nil)

// Record appends a history entry.
func (s *historyStore) Record(_ context.Context, rec domain.ReportRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshalling report record: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		key := fmt.Sprintf("%s%020d.%s", historyPrefix, rec.GeneratedAt.UnixNano(), rec.FileName)
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("saving report history: %w", err)
	}
	return nil
}

// List returns the most recent entries first.
func (s *historyStore) List(_ context.Context, limit int) ([]domain.ReportRecord, error) {
	var records []domain.ReportRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(historyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec domain.ReportRecord
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing report history: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].GeneratedAt.After(records[j].GeneratedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// badgerLogger routes Badger's internal logging through the logger package.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	logger.Error("badger: %s", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (badgerLogger) Warningf(format string, args ...any) {
	logger.Warn("badger: %s", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (badgerLogger) Infof(format string, args ...any) {
	logger.Debug("badger: %s", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (badgerLogger) Debugf(format string, args ...any) {
	logger.Debug("badger: %s", strings.TrimSpace(fmt.Sprintf(format, args...)))
}
