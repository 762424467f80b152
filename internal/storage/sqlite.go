// Package storage provides a SQLite replay journal for finished runs.
// A replay is the seed, viewport, configuration and tick-stamped input log
// of one run, enough to re-simulate it exactly.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/fruitcatch/internal/config"
	"github.com/vovakirdan/fruitcatch/internal/core"
	"github.com/vovakirdan/fruitcatch/internal/engine"
	"github.com/vovakirdan/fruitcatch/internal/games/fruit"
)

// ErrReplayNotFound is returned when no replay has the requested id.
var ErrReplayNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// Replay is the summary row of a recorded run.
type Replay struct {
	ID        int64
	Seed      int64
	TickRate  int
	ViewW     float64
	ViewH     float64
	Ticks     uint64
	Outcome   string // Phase the run ended in
	Score     int
	Tier      int
	TierName  string
	FinalHash uint64
	Inputs    int
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows a single writer; SSH sessions share this store.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			view_w REAL NOT NULL,
			view_h REAL NOT NULL,
			ticks INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			tier INTEGER NOT NULL DEFAULT 1,
			tier_name TEXT NOT NULL DEFAULT '',
			final_hash INTEGER NOT NULL,
			config TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_inputs (
			replay_id INTEGER NOT NULL REFERENCES replays(id),
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			kind INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			PRIMARY KEY (replay_id, seq)
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

// SaveReplay records a finished run and its input log in one transaction.
// Returns the ID of the inserted replay.
func (s *Store) SaveReplay(rec fruit.Recording, final fruit.Snapshot) (id int64, err error) {
	cfgYAML, err := yaml.Marshal(rec.Config)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode config: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.Exec(
		`INSERT INTO replays
		 (seed, tick_rate, view_w, view_h, ticks, outcome, score, tier, tier_name, final_hash, config)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Seed,
		rec.TickRate,
		rec.View.W,
		rec.View.H,
		int64(rec.Ticks), //#nosec G115 -- tick counts stay far below 2^63
		final.Phase.String(),
		final.Score,
		final.Tier.Number,
		final.Tier.Name,
		int64(final.Hash()), //#nosec G115 -- stored as raw bits
		string(cfgYAML),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO replay_inputs (replay_id, seq, tick, kind, x, y) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for seq, in := range rec.Inputs {
		//#nosec G115 -- tick counts stay far below 2^63
		if _, err = stmt.Exec(id, seq, int64(in.Tick), int(in.Kind), in.X, in.Y); err != nil {
			return 0, fmt.Errorf("storage: cannot save replay input: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// Ensure Store implements ReplaySaver
var _ engine.ReplaySaver = (*Store)(nil)

const replayColumns = `r.id, r.seed, r.tick_rate, r.view_w, r.view_h, r.ticks, r.outcome,
	r.score, r.tier, r.tier_name, r.final_hash, r.created_at,
	(SELECT COUNT(*) FROM replay_inputs i WHERE i.replay_id = r.id)`

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(row scanner) (Replay, error) {
	var r Replay
	var ticks, hash int64
	var createdAt any
	if err := row.Scan(
		&r.ID,
		&r.Seed,
		&r.TickRate,
		&r.ViewW,
		&r.ViewH,
		&ticks,
		&r.Outcome,
		&r.Score,
		&r.Tier,
		&r.TierName,
		&hash,
		&createdAt,
		&r.Inputs,
	); err != nil {
		return Replay{}, err
	}
	r.Ticks = uint64(ticks)    //#nosec G115 -- written from a uint64
	r.FinalHash = uint64(hash) //#nosec G115 -- stored as raw bits
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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

// ReplayByID retrieves the summary of one replay.
func (s *Store) ReplayByID(id int64) (Replay, error) {
	r, err := scanReplay(s.db.QueryRow(
		"SELECT "+replayColumns+" FROM replays r WHERE r.id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return Replay{}, fmt.Errorf("%w: id %d", ErrReplayNotFound, id)
	}
	if err != nil {
		return Replay{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	return r, nil
}

// RecentReplays retrieves the most recent replays, newest first.
func (s *Store) RecentReplays(limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+replayColumns+" FROM replays r ORDER BY r.id DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var replays []Replay
	for rows.Next() {
		r, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		replays = append(replays, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return replays, nil
}

// LoadRecording rebuilds the full recording of a replay, ready for
// fruit.Simulate.
func (s *Store) LoadRecording(id int64) (fruit.Recording, error) {
	var rec fruit.Recording
	var ticks int64
	var cfgYAML string
	err := s.db.QueryRow(
		"SELECT seed, tick_rate, view_w, view_h, ticks, config FROM replays WHERE id = ?", id,
	).Scan(&rec.Seed, &rec.TickRate, &rec.View.W, &rec.View.H, &ticks, &cfgYAML)
	if errors.Is(err, sql.ErrNoRows) {
		return fruit.Recording{}, fmt.Errorf("%w: id %d", ErrReplayNotFound, id)
	}
	if err != nil {
		return fruit.Recording{}, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	rec.Ticks = uint64(ticks) //#nosec G115 -- written from a uint64

	rec.Config, err = config.Parse([]byte(cfgYAML))
	if err != nil {
		return fruit.Recording{}, fmt.Errorf("storage: replay %d config: %w", id, err)
	}

	rows, err := s.db.Query(
		"SELECT tick, kind, x, y FROM replay_inputs WHERE replay_id = ? ORDER BY seq", id,
	)
	if err != nil {
		return fruit.Recording{}, fmt.Errorf("storage: cannot query replay inputs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var in fruit.InputRecord
		var tick int64
		var kind int
		if err := rows.Scan(&tick, &kind, &in.X, &in.Y); err != nil {
			return fruit.Recording{}, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		in.Tick = uint64(tick) //#nosec G115 -- written from a uint64
		in.Kind = fruit.InputKind(kind)
		rec.Inputs = append(rec.Inputs, in)
	}
	if err := rows.Err(); err != nil {
		return fruit.Recording{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// DeleteReplay removes a replay and its inputs.
func (s *Store) DeleteReplay(id int64) error {
	if _, err := s.db.Exec("DELETE FROM replay_inputs WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay inputs: %w", err)
	}
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id %d", ErrReplayNotFound, id)
	}
	return nil
}

// Viewport returns the starting viewport of the replay.
func (r Replay) Viewport() core.Viewport {
	return core.Viewport{W: r.ViewW, H: r.ViewH}
}
