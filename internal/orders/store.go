package orders

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type dataset struct {
	records []OrderRecord
	stats   LoadStats
	modTime time.Time
}

// Store keeps loaded order files in memory so repeated analyses over the same
// export do not re-parse it. Entries are reloaded when the file changes on disk.
type Store struct {
	mu       sync.RWMutex
	root     string
	datasets map[string]dataset
}

// NewStore creates a store resolving relative paths against root.
func NewStore(root string) *Store {
	return &Store{
		root:     root,
		datasets: make(map[string]dataset),
	}
}

// Resolve turns a user supplied file name into an absolute path.
func (s *Store) Resolve(name string) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", name, err)
	}
	return abs, nil
}

// Get returns the records of a file, loading it on first use or after modification.
// The returned slice is shared and must be treated as read-only.
func (s *Store) Get(name string) ([]OrderRecord, LoadStats, error) {
	path, err := s.Resolve(name)
	if err != nil {
		return nil, LoadStats{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, LoadStats{Path: path}, fmt.Errorf("orders file not found: %w", err)
	}

	s.mu.RLock()
	ds, ok := s.datasets[path]
	s.mu.RUnlock()
	if ok && ds.modTime.Equal(info.ModTime()) {
		return ds.records, ds.stats, nil
	}

	records, stats, err := LoadFile(path)
	if err != nil {
		return nil, stats, err
	}
	log.Info().
		Str("path", path).
		Int("rows", stats.Rows).
		Int("kept", stats.Kept).
		Int("dropped", stats.Dropped).
		Msg("Loaded orders")

	s.mu.Lock()
	s.datasets[path] = dataset{records: records, stats: stats, modTime: info.ModTime()}
	s.mu.Unlock()

	return records, stats, nil
}

// Len returns the number of cached files.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}
