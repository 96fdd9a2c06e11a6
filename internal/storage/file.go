package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
)

// File names inside the data directory.
const (
	RankingFile  = "ranking.json"
	ProgressFile = "progress.json"
)

type progressDoc struct {
	HighestUnlockedStage int `json:"highest_unlocked_stage"`
}

// FileStore keeps rankings and progress in two JSON files. Every write
// replaces the whole file through a temporary file and a rename.
type FileStore struct {
	dir        string
	stageCount int
	logger     *log.Logger
}

// NewFileStore uses dir, creating it if needed.
func NewFileStore(dir string, stageCount int, logger *log.Logger) (*FileStore, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, stageCount: stageCount, logger: logger}, nil
}

// LoadRankings reads ranking.json. Stage keys that are not integers are skipped.
func (s *FileStore) LoadRankings() map[int][]RankingEntry {
	out := emptyRankings(s.stageCount)

	var raw map[string][]RankingEntry
	if !s.readJSON(RankingFile, &raw) {
		return out
	}
	for key, list := range raw {
		stage, err := strconv.Atoi(key)
		if err != nil {
			s.logger.Warn("skipping ranking with bad stage key", "key", key)
			continue
		}
		if list == nil {
			list = []RankingEntry{}
		}
		out[stage] = list
	}
	return out
}

// AddEntry rewrites ranking.json with e inserted.
func (s *FileStore) AddEntry(stage int, e RankingEntry) error {
	all := s.LoadRankings()
	all[stage] = InsertRanked(all[stage], e)

	raw := make(map[string][]RankingEntry, len(all))
	for k, v := range all {
		raw[strconv.Itoa(k)] = v
	}
	if err := s.writeJSON(RankingFile, raw); err != nil {
		return fmt.Errorf("storage: cannot save rankings: %w", err)
	}
	return nil
}

// HasPlayerCleared reports whether name appears in the stage's ranking.
func (s *FileStore) HasPlayerCleared(name string, stage int) bool {
	return containsName(s.LoadRankings()[stage], name)
}

// LoadProgress reads progress.json, defaulting to 1.
func (s *FileStore) LoadProgress() int {
	var doc progressDoc
	if !s.readJSON(ProgressFile, &doc) || doc.HighestUnlockedStage < 1 {
		return 1
	}
	return doc.HighestUnlockedStage
}

// SaveProgress writes progress.json unless it would lower the stored stage.
func (s *FileStore) SaveProgress(stage int) error {
	if stage <= s.LoadProgress() {
		return nil
	}
	if err := s.writeJSON(ProgressFile, progressDoc{HighestUnlockedStage: stage}); err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// Close is a no-op; files are closed after every operation.
func (s *FileStore) Close() error {
	return nil
}

// readJSON decodes a data file. A missing file is silent; unreadable or
// corrupt files are logged. It reports whether v was filled.
func (s *FileStore) readJSON(name string, v any) bool {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("cannot read data file, using defaults", "path", path, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warn("corrupt data file, using defaults", "path", path, "err", err)
		return false
	}
	return true
}

func (s *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
