package domain

// WatchlistStore snapshots the watch-list.
// The default implementation is memory-only; BoltDB backs it when enabled.
type WatchlistStore interface {
	Load() ([]WatchedEntry, error)
	Save(entries []WatchedEntry) error

	// Reserve returns the version for a snapshot taken now; SaveVersion
	// ignores versions older than the last one written.
	Reserve() uint64
	SaveVersion(version uint64, entries []WatchedEntry) error

	Close() error
}
