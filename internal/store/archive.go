// Package store persists finished games: a SQLite archive for replay and
// parquet training records for offline analysis.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"uttt_go/internal/codec"
	"uttt_go/internal/game"
)

// ErrNotFound is returned by LoadGame for an unknown id.
var ErrNotFound = errors.New("game not found")

// ArchivedMove is one ply in absolute 9×9 coordinates.
type ArchivedMove struct {
	Player int `json:"player"`
	Row    int `json:"row"`
	Col    int `json:"col"`
}

// GameRecord is one finished (or abandoned) game.
type GameRecord struct {
	ID        string
	StartedAt time.Time
	EndedAt   time.Time
	PlayerA   string
	PlayerB   string
	Winner    game.CellState // Empty for a draw
	Moves     []ArchivedMove
	Field     string // final position, codec format
	Macro     string
}

// NewGameRecord captures gs under a fresh id.
func NewGameRecord(gs *game.GameState, playerA, playerB string, started time.Time) GameRecord {
	rec := GameRecord{
		ID:        uuid.New().String(),
		StartedAt: started,
		EndedAt:   time.Now(),
		PlayerA:   playerA,
		PlayerB:   playerB,
		Winner:    gs.Winner,
		Moves:     make([]ArchivedMove, 0, len(gs.History)),
	}
	for _, m := range gs.History {
		r, c := m.Absolute()
		rec.Moves = append(rec.Moves, ArchivedMove{Player: int(m.Player), Row: r, Col: c})
	}
	rec.Field, rec.Macro = codec.Encode(gs.Board)
	return rec
}

// Replay rebuilds the game state after the first n plies (all plies if n < 0).
func (r GameRecord) Replay(n int) (*game.GameState, error) {
	if n < 0 || n > len(r.Moves) {
		n = len(r.Moves)
	}
	gs := game.NewGameState()
	for i, am := range r.Moves[:n] {
		if game.CellState(am.Player) != gs.CurrentPlayer {
			return nil, fmt.Errorf("ply %d: %w: %d to move, got %d", i, game.ErrIllegalMove, gs.CurrentPlayer, am.Player)
		}
		if err := gs.PlayAt(am.Row, am.Col); err != nil {
			return nil, fmt.Errorf("ply %d: %w", i, err)
		}
	}
	return gs, nil
}

// Archive is a SQLite-backed game archive.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (creating if needed) the archive at path.
func OpenArchive(path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create archive dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	// sqlite 只允许一个写者
	db.SetMaxOpenConns(1)

	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		started_at INTEGER,
		ended_at INTEGER,
		player_a TEXT,
		player_b TEXT,
		winner INTEGER,
		plies INTEGER,
		moves TEXT,
		field TEXT,
		macroboard TEXT
	);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create games table: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// SaveGame inserts rec, replacing a row with the same id.
func (a *Archive) SaveGame(ctx context.Context, rec GameRecord) error {
	moves, err := json.Marshal(rec.Moves)
	if err != nil {
		return fmt.Errorf("encode moves: %w", err)
	}
	const insertSQL = `
	INSERT OR REPLACE INTO games (id, started_at, ended_at, player_a, player_b, winner, plies, moves, field, macroboard)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = a.db.ExecContext(ctx, insertSQL,
		rec.ID,
		rec.StartedAt.UnixMilli(),
		rec.EndedAt.UnixMilli(),
		rec.PlayerA,
		rec.PlayerB,
		int(rec.Winner),
		len(rec.Moves),
		string(moves),
		rec.Field,
		rec.Macro,
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", rec.ID, err)
	}
	return nil
}

const selectColumns = `id, started_at, ended_at, player_a, player_b, winner, moves, field, macroboard`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (GameRecord, error) {
	var (
		rec            GameRecord
		started, ended int64
		winner         int
		moves          string
	)
	if err := s.Scan(&rec.ID, &started, &ended, &rec.PlayerA, &rec.PlayerB, &winner, &moves, &rec.Field, &rec.Macro); err != nil {
		return GameRecord{}, err
	}
	rec.StartedAt = time.UnixMilli(started)
	rec.EndedAt = time.UnixMilli(ended)
	rec.Winner = game.CellState(winner)
	if err := json.Unmarshal([]byte(moves), &rec.Moves); err != nil {
		return GameRecord{}, fmt.Errorf("decode moves of %s: %w", rec.ID, err)
	}
	return rec, nil
}

// LoadGame returns the game with the given id.
func (a *Archive) LoadGame(ctx context.Context, id string) (GameRecord, error) {
	row := a.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM games WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GameRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return GameRecord{}, fmt.Errorf("load game %s: %w", id, err)
	}
	return rec, nil
}

// ListGames returns up to limit games, newest first.
func (a *Archive) ListGames(ctx context.Context, limit int) ([]GameRecord, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM games ORDER BY ended_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var out []GameRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CountGames returns the number of archived games.
func (a *Archive) CountGames(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}
