// Package storage provides SQLite-based persistence for finished games and
// suspended sessions. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong/core"
)

// DefaultSlot is the save slot used by the terminal client.
const DefaultSlot = "default"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Result is one finished (won or abandoned) game.
type Result struct {
	ID           int64
	GameID       string
	LayoutID     string
	Difficulty   string
	Won          bool
	Elapsed      time.Duration
	TilesRemoved int
	Score        int
	CreatedAt    time.Time
}

// LayoutStats aggregates results for one layout.
type LayoutStats struct {
	LayoutID   string
	Played     int
	Won        int
	BestTime   time.Duration // zero if never won
	BestScore  int
	LastPlayed time.Time
}

// WinRate returns the fraction of games won.
func (s LayoutStats) WinRate() float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Played)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			layout_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			tiles_removed INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_layout ON results(layout_id);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(layout_id, won, elapsed_ms);

		CREATE TABLE IF NOT EXISTS saved_sessions (
			slot TEXT PRIMARY KEY,
			layout_id TEXT NOT NULL,
			snapshot_json TEXT NOT NULL,
			saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished game and returns the inserted id.
func (s *Store) SaveResult(r Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results (game_id, layout_id, difficulty, won, elapsed_ms, tiles_removed, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.LayoutID, r.Difficulty, boolToInt(r.Won),
		r.Elapsed.Milliseconds(), r.TilesRemoved, r.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentResults returns the latest results, newest first.
func (s *Store) RecentResults(limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT id, game_id, layout_id, difficulty, won, elapsed_ms, tiles_removed, score, created_at
		 FROM results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// BestTimes returns the fastest wins on a layout.
func (s *Store) BestTimes(layoutID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT id, game_id, layout_id, difficulty, won, elapsed_ms, tiles_removed, score, created_at
		 FROM results
		 WHERE layout_id = ? AND won = 1
		 ORDER BY elapsed_ms ASC, id ASC
		 LIMIT ?`,
		layoutID, limit,
	)
}

// ClearResults deletes all results for a layout. An empty id clears everything.
func (s *Store) ClearResults(layoutID string) error {
	var err error
	if layoutID == "" {
		_, err = s.db.Exec("DELETE FROM results")
	} else {
		_, err = s.db.Exec("DELETE FROM results WHERE layout_id = ?", layoutID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var (
			r         Result
			won       int
			elapsedMs int64
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.GameID, &r.LayoutID, &r.Difficulty, &won,
			&elapsedMs, &r.TilesRemoved, &r.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Won = won != 0
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// LayoutStats returns aggregated statistics keyed by layout id.
func (s *Store) LayoutStats() (map[string]*LayoutStats, error) {
	rows, err := s.db.Query(
		`SELECT layout_id, COUNT(*), COALESCE(SUM(won), 0),
		        COALESCE(MIN(CASE WHEN won = 1 THEN elapsed_ms END), 0),
		        COALESCE(MAX(score), 0), MAX(created_at)
		 FROM results
		 GROUP BY layout_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get layout stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LayoutStats)
	for rows.Next() {
		var (
			st         LayoutStats
			bestMs     int64
			lastPlayed any
		)
		if err := rows.Scan(&st.LayoutID, &st.Played, &st.Won, &bestMs, &st.BestScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.BestTime = time.Duration(bestMs) * time.Millisecond
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LayoutID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// SaveSnapshot stores a suspended session in a slot, replacing what was there.
func (s *Store) SaveSnapshot(slot string, snap core.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO saved_sessions (slot, layout_id, snapshot_json, saved_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   layout_id = excluded.layout_id,
		   snapshot_json = excluded.snapshot_json,
		   saved_at = excluded.saved_at`,
		slot, snap.LayoutID, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads the session stored in a slot.
// The boolean is false when the slot is empty.
func (s *Store) LoadSnapshot(slot string) (core.Snapshot, bool, error) {
	var data string
	err := s.db.QueryRow(
		"SELECT snapshot_json FROM saved_sessions WHERE slot = ?",
		slot,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Snapshot{}, false, nil
	}
	if err != nil {
		return core.Snapshot{}, false, fmt.Errorf("storage: cannot load snapshot: %w", err)
	}

	var snap core.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return core.Snapshot{}, false, fmt.Errorf("storage: cannot decode snapshot: %w", err)
	}
	return snap, true, nil
}

// DeleteSnapshot empties a slot. Deleting an empty slot is not an error.
func (s *Store) DeleteSnapshot(slot string) error {
	if _, err := s.db.Exec("DELETE FROM saved_sessions WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete snapshot: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
