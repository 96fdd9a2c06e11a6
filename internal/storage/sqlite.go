package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps rankings and progress in a SQLite database.
type SQLiteStore struct {
	db         *sql.DB
	stageCount int
	logger     *log.Logger
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string, stageCount int, logger *log.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = log.Default()
	}

	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db, stageCount: stageCount, logger: logger}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rankings (
			stage INTEGER NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			blocks INTEGER NOT NULL,
			time_secs REAL NOT NULL,
			eaten INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (stage, position)
		);

		CREATE TABLE IF NOT EXISTS progress (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			highest_unlocked_stage INTEGER NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func stageRankings(q querier, stage int) ([]RankingEntry, error) {
	rows, err := q.Query(
		`SELECT name, blocks, time_secs, eaten
		 FROM rankings
		 WHERE stage = ?
		 ORDER BY position`,
		stage,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rankings: %w", err)
	}
	defer rows.Close()

	entries := []RankingEntry{}
	for rows.Next() {
		var e RankingEntry
		if err := rows.Scan(&e.Name, &e.Blocks, &e.Time, &e.Eaten); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// LoadRankings returns all rankings. Query failures are logged and yield
// empty rankings.
func (s *SQLiteStore) LoadRankings() map[int][]RankingEntry {
	out := emptyRankings(s.stageCount)

	rows, err := s.db.Query(
		`SELECT stage, name, blocks, time_secs, eaten
		 FROM rankings
		 ORDER BY stage, position`,
	)
	if err != nil {
		s.logger.Warn("cannot read rankings, using defaults", "err", err)
		return out
	}
	defer rows.Close()

	for rows.Next() {
		var stage int
		var e RankingEntry
		if err := rows.Scan(&stage, &e.Name, &e.Blocks, &e.Time, &e.Eaten); err != nil {
			s.logger.Warn("cannot scan ranking row", "err", err)
			return emptyRankings(s.stageCount)
		}
		out[stage] = append(out[stage], e)
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("ranking iteration error", "err", err)
		return emptyRankings(s.stageCount)
	}
	return out
}

// AddEntry rewrites the stage's ranking rows in one transaction.
func (s *SQLiteStore) AddEntry(stage int, e RankingEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := stageRankings(tx, stage)
	if err != nil {
		return err
	}
	ranked := InsertRanked(current, e)

	if _, err := tx.Exec("DELETE FROM rankings WHERE stage = ?", stage); err != nil {
		return fmt.Errorf("storage: cannot clear rankings: %w", err)
	}
	for i, r := range ranked {
		if _, err := tx.Exec(
			"INSERT INTO rankings (stage, position, name, blocks, time_secs, eaten) VALUES (?, ?, ?, ?, ?, ?)",
			stage, i, r.Name, r.Blocks, r.Time, r.Eaten,
		); err != nil {
			return fmt.Errorf("storage: cannot save ranking: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit rankings: %w", err)
	}
	return nil
}

// HasPlayerCleared reports whether name holds a ranking for the stage.
func (s *SQLiteStore) HasPlayerCleared(name string, stage int) bool {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM rankings WHERE stage = ? AND name = ?",
		stage, name,
	).Scan(&n)
	if err != nil {
		s.logger.Warn("cannot query rankings", "err", err)
		return false
	}
	return n > 0
}

// LoadProgress returns the highest unlocked stage, defaulting to 1.
func (s *SQLiteStore) LoadProgress() int {
	var stage int
	err := s.db.QueryRow("SELECT highest_unlocked_stage FROM progress WHERE id = 1").Scan(&stage)
	if err == sql.ErrNoRows {
		return 1
	}
	if err != nil {
		s.logger.Warn("cannot read progress, using defaults", "err", err)
		return 1
	}
	if stage < 1 {
		return 1
	}
	return stage
}

// SaveProgress upserts the progress row, keeping the larger value.
func (s *SQLiteStore) SaveProgress(stage int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (id, highest_unlocked_stage) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET highest_unlocked_stage = MAX(highest_unlocked_stage, excluded.highest_unlocked_stage)`,
		stage,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}
