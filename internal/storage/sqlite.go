// Package storage provides SQLite-based persistence for saved games and
// escape records. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a save slot does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SaveSlot is a named saved game with a summary of its state.
type SaveSlot struct {
	ID        int64
	Name      string
	Data      []byte
	GameTime  uint64 // ms
	Nation    int    // active prisoner
	Escaped   int    // prisoners out of the castle
	UpdatedAt time.Time
}

// Outcome of a prisoner's run.
type Outcome string

const (
	OutcomeEscaped  Outcome = "escaped"
	OutcomeKilled   Outcome = "killed"
	OutcomeGameOver Outcome = "game_over"
	OutcomeGameWon  Outcome = "game_won"
)

// EscapeRecord records how a prisoner's run ended.
type EscapeRecord struct {
	ID        int64
	Session   string // run or SSH session that produced the record
	Nation    int
	Outcome   Outcome
	GameTime  uint64 // ms
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS saves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slot TEXT NOT NULL UNIQUE,
			data BLOB NOT NULL,
			game_time INTEGER NOT NULL DEFAULT 0,
			nation INTEGER NOT NULL DEFAULT 0,
			escaped INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS escapes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			nation INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			game_time INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_escapes_nation ON escapes(nation, outcome);
		CREATE INDEX IF NOT EXISTS idx_escapes_session ON escapes(session);
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

// PutSave creates or replaces the save slot with the slot's name.
func (s *Store) PutSave(slot SaveSlot) error {
	if slot.Name == "" {
		return errors.New("storage: empty slot name")
	}
	_, err := s.db.Exec(
		`INSERT INTO saves (slot, data, game_time, nation, escaped, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   data = excluded.data,
		   game_time = excluded.game_time,
		   nation = excluded.nation,
		   escaped = excluded.escaped,
		   updated_at = CURRENT_TIMESTAMP`,
		slot.Name, slot.Data, int64(slot.GameTime), slot.Nation, slot.Escaped, //#nosec G115 -- game time fits
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %s: %w", slot.Name, err)
	}
	return nil
}

// GetSave returns a save slot with its data.
func (s *Store) GetSave(name string) (*SaveSlot, error) {
	var slot SaveSlot
	var gameTime int64
	var updatedAt any
	err := s.db.QueryRow(
		`SELECT id, slot, data, game_time, nation, escaped, updated_at
		 FROM saves WHERE slot = ?`,
		name,
	).Scan(&slot.ID, &slot.Name, &slot.Data, &gameTime, &slot.Nation, &slot.Escaped, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: save slot %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query save slot: %w", err)
	}
	slot.GameTime = uint64(gameTime) //#nosec G115 -- stored from a uint64
	slot.UpdatedAt = parseTime(updatedAt)
	return &slot, nil
}

// ListSaves returns every save slot without its data, most recent first.
func (s *Store) ListSaves() ([]SaveSlot, error) {
	rows, err := s.db.Query(
		`SELECT id, slot, game_time, nation, escaped, updated_at
		 FROM saves
		 ORDER BY updated_at DESC, slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var slots []SaveSlot
	for rows.Next() {
		var slot SaveSlot
		var gameTime int64
		var updatedAt any
		if err := rows.Scan(&slot.ID, &slot.Name, &gameTime, &slot.Nation, &slot.Escaped, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		slot.GameTime = uint64(gameTime) //#nosec G115 -- stored from a uint64
		slot.UpdatedAt = parseTime(updatedAt)
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return slots, nil
}

// DeleteSave removes a save slot.
func (s *Store) DeleteSave(name string) error {
	res, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save slot: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: save slot %s", ErrNotFound, name)
	}
	return nil
}

// RecordEscape stores the outcome of a prisoner's run.
// Returns the ID of the inserted record.
func (s *Store) RecordEscape(rec EscapeRecord) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO escapes (session, nation, outcome, game_time) VALUES (?, ?, ?, ?)",
		rec.Session, rec.Nation, string(rec.Outcome), int64(rec.GameTime), //#nosec G115 -- game time fits
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record escape: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentEscapes retrieves the most recent records.
func (s *Store) RecentEscapes(limit int) ([]EscapeRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session, nation, outcome, game_time, created_at
		 FROM escapes
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query escapes: %w", err)
	}
	defer rows.Close()

	var records []EscapeRecord
	for rows.Next() {
		var rec EscapeRecord
		var outcome string
		var gameTime int64
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.Session, &rec.Nation, &outcome, &gameTime, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.Outcome = Outcome(outcome)
		rec.GameTime = uint64(gameTime) //#nosec G115 -- stored from a uint64
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// NationStats contains aggregated records for a nation.
type NationStats struct {
	Nation       int
	Escapes      int
	Deaths       int
	FastestEscMs uint64 // 0 if the nation never escaped
}

// Stats aggregates the escape records per nation.
func (s *Store) Stats() (map[int]*NationStats, error) {
	rows, err := s.db.Query(
		`SELECT nation,
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        COALESCE(MIN(CASE WHEN outcome = ? THEN game_time END), 0)
		 FROM escapes
		 GROUP BY nation`,
		string(OutcomeEscaped), string(OutcomeKilled), string(OutcomeEscaped),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*NationStats)
	for rows.Next() {
		var ns NationStats
		var fastest int64
		if err := rows.Scan(&ns.Nation, &ns.Escapes, &ns.Deaths, &fastest); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ns.FastestEscMs = uint64(fastest) //#nosec G115 -- stored from a uint64
		stats[ns.Nation] = &ns
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
