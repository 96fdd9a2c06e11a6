// Package storage persists stage rankings and unlock progress.
// Two backends implement Store: a JSON file store (the default, one file
// per collection rewritten wholesale) and a SQLite store using the pure-Go
// modernc.org/sqlite driver.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
)

// MaxRankings is the number of entries kept per stage.
const MaxRankings = 10

// RankingEntry is one stage clear.
type RankingEntry struct {
	Name   string  `json:"name"`
	Blocks int     `json:"blocks"`
	Time   float64 `json:"time"` // Seconds
	Eaten  int     `json:"eaten"`
}

// Less orders entries by blocks used, then blocks eaten, then time.
// Fewer is better for all three.
func Less(a, b RankingEntry) bool {
	if a.Blocks != b.Blocks {
		return a.Blocks < b.Blocks
	}
	if a.Eaten != b.Eaten {
		return a.Eaten < b.Eaten
	}
	return a.Time < b.Time
}

// InsertRanked appends e, sorts and keeps the best MaxRankings entries.
// Ties keep their insertion order. The input slice is not modified.
func InsertRanked(list []RankingEntry, e RankingEntry) []RankingEntry {
	out := make([]RankingEntry, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, e)
	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})
	if len(out) > MaxRankings {
		out = out[:MaxRankings]
	}
	return out
}

// Store is the persistence contract used by the game flow.
// Reads never fail: missing or unreadable data yields defaults.
// Writes return wrapped I/O errors.
type Store interface {
	// LoadRankings returns every stage's ranking, with an empty list for
	// each known stage that has none.
	LoadRankings() map[int][]RankingEntry
	// AddEntry inserts e into the stage's ranking and persists it.
	AddEntry(stage int, e RankingEntry) error
	// HasPlayerCleared reports whether the stage ranking holds name.
	HasPlayerCleared(name string, stage int) bool
	// LoadProgress returns the highest unlocked stage, at least 1.
	LoadProgress() int
	// SaveProgress stores the highest unlocked stage. It never lowers the
	// stored value.
	SaveProgress(stage int) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open creates the store for backend inside dir. stageCount seeds empty
// rankings for known stages.
func Open(backend, dir string, stageCount int, logger *log.Logger) (Store, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	switch backend {
	case "", BackendJSON:
		return NewFileStore(dir, stageCount, logger)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "animalbridge.db"), stageCount, logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q (want %s or %s)", backend, BackendJSON, BackendSQLite)
	}
}

// DefaultDir returns ~/.animalbridge, or the working directory when home
// is unavailable.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".animalbridge")
}

// ExpandHome replaces a leading ~ with the home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func emptyRankings(stageCount int) map[int][]RankingEntry {
	m := make(map[int][]RankingEntry, stageCount)
	for i := 1; i <= stageCount; i++ {
		m[i] = []RankingEntry{}
	}
	return m
}

func containsName(list []RankingEntry, name string) bool {
	for _, e := range list {
		if e.Name == name {
			return true
		}
	}
	return false
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)
