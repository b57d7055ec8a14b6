package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mmcdole/popcorn/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketWatchlist = []byte("watchlist")
	bucketMeta      = []byte("meta")
)

const (
	keyEntries       = "entries"
	keySchemaVersion = "schema"
	schemaVersion    = "1"
)

// ErrClosed is returned by saves that arrive after Close
var ErrClosed = errors.New("watchlist store closed")

// WatchlistStore implements domain.WatchlistStore using BoltDB.
// With no path it keeps the snapshot in memory only.
//
// Saves are versioned: a snapshot older than the last one written is
// dropped, so concurrent saves can finish in any order.
type WatchlistStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects snapshot, applied and closed

	// Last saved snapshot, JSON-encoded
	snapshot []byte

	issued  atomic.Uint64
	applied uint64
	closed  bool
}

// NewMemoryStore returns a store that never touches disk
func NewMemoryStore() *WatchlistStore {
	return &WatchlistStore{}
}

// NewWatchlistStore opens (or creates) the BoltDB file at path.
// An empty path selects memory-only mode.
func NewWatchlistStore(path string) (*WatchlistStore, error) {
	if path == "" {
		return NewMemoryStore(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketWatchlist, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return tx.Bucket(bucketMeta).Put([]byte(keySchemaVersion), []byte(schemaVersion))
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &WatchlistStore{db: db}, nil
}

// Close releases the database. Later saves fail with ErrClosed.
func (s *WatchlistStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns the last saved watch-list, or nil when nothing was saved
func (s *WatchlistStore) Load() ([]domain.WatchedEntry, error) {
	s.mu.RLock()
	data := s.snapshot
	s.mu.RUnlock()

	if data == nil && s.db != nil {
		err := s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketWatchlist)
			if b == nil {
				return nil
			}
			if v := b.Get([]byte(keyEntries)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read watchlist: %w", err)
		}

		// Promote to memory unless a save got there first
		if data != nil {
			s.mu.Lock()
			if s.snapshot == nil {
				s.snapshot = data
			}
			s.mu.Unlock()
		}
	}

	if data == nil {
		return nil, nil
	}

	var entries []domain.WatchedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode watchlist: %w", err)
	}
	return entries, nil
}

// Reserve hands out the version for the next snapshot. Callers reserve
// when the snapshot is taken and pass the version to SaveVersion.
func (s *WatchlistStore) Reserve() uint64 {
	return s.issued.Add(1)
}

// Save replaces the stored watch-list with entries as the newest snapshot
func (s *WatchlistStore) Save(entries []domain.WatchedEntry) error {
	return s.SaveVersion(s.Reserve(), entries)
}

// SaveVersion writes entries unless a newer version is already stored
func (s *WatchlistStore) SaveVersion(version uint64, entries []domain.WatchedEntry) error {
	if entries == nil {
		entries = []domain.WatchedEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if version <= s.applied {
		return nil // superseded
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketWatchlist).Put([]byte(keyEntries), data)
		})
		if err != nil {
			return err
		}
	}

	s.snapshot = data
	s.applied = version
	return nil
}

// Persistent reports whether the store writes to disk
func (s *WatchlistStore) Persistent() bool {
	return s.db != nil
}
