// Package movelog stores the moves of played games in a SQLite database.
package movelog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS moves (
	game_id TEXT NOT NULL,
	ply INTEGER NOT NULL,
	player INTEGER NOT NULL,
	move TEXT NOT NULL,
	score REAL NOT NULL,
	phase TEXT NOT NULL,
	source TEXT NOT NULL,
	board TEXT NOT NULL,
	played_at INTEGER NOT NULL,
	PRIMARY KEY (game_id, ply)
);
`

// Entry is one recorded move. A pass is recorded with the move "pass".
type Entry struct {
	GameID   uuid.UUID
	Ply      int
	Player   game.Player
	Move     string
	Score    float32
	Phase    reversi.Phase
	Source   string // what chose the move: an engine, the book...
	Board    reversi.Board
	PlayedAt time.Time
}

// Store is a move log backed by a SQLite database. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "Failed to create database directory")
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open database %q", path)
	}
	// a single connection serialises writers
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "Failed to create table")
	}
	log.Debug().Str("path", path).Msg("move log opened")
	return &Store{db: db}, nil
}

// Record appends the entry to the log.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.PlayedAt.IsZero() {
		e.PlayedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO moves (game_id, ply, player, move, score, phase, source, board, played_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.GameID.String(),
		e.Ply,
		int(e.Player),
		e.Move,
		e.Score,
		e.Phase.String(),
		e.Source,
		boardString(&e.Board),
		e.PlayedAt.UnixNano(),
	)
	return errors.Wrapf(err, "Failed to record ply %d of game %v", e.Ply, e.GameID)
}

// Entries returns the moves of a game in the order they were played.
func (s *Store) Entries(ctx context.Context, gameID uuid.UUID) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ply, player, move, score, phase, source, board, played_at FROM moves WHERE game_id = ? ORDER BY ply`,
		gameID.String())
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to query game %v", gameID)
	}
	defer rows.Close()

	var retVal []Entry
	for rows.Next() {
		var (
			e            Entry
			player       int
			phase, board string
			playedAt     int64
		)
		if err := rows.Scan(&e.Ply, &player, &e.Move, &e.Score, &phase, &e.Source, &board, &playedAt); err != nil {
			return nil, errors.Wrap(err, "Failed to read move")
		}
		e.GameID = gameID
		e.Player = game.Player(player)
		e.PlayedAt = time.Unix(0, playedAt)
		if e.Phase, err = reversi.ParsePhase(phase); err != nil {
			return nil, err
		}
		if e.Board, err = reversi.ParseBoard(board); err != nil {
			return nil, err
		}
		retVal = append(retVal, e)
	}
	return retVal, errors.Wrap(rows.Err(), "Failed to read moves")
}

// Games lists the ids of the recorded games.
func (s *Store) Games(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT game_id FROM moves ORDER BY game_id`)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to query games")
	}
	defer rows.Close()

	var retVal []uuid.UUID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "Failed to read game id")
		}
		u, err := uuid.Parse(id)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad game id %q", id)
		}
		retVal = append(retVal, u)
	}
	return retVal, errors.Wrap(rows.Err(), "Failed to read games")
}

func (s *Store) Close() error { return s.db.Close() }

// boardString writes the board as 64 characters, X for black, O for white and . for empty cells.
func boardString(b *reversi.Board) string {
	buf := make([]byte, 0, reversi.Cells)
	for _, c := range b {
		switch c {
		case game.Black:
			buf = append(buf, 'X')
		case game.White:
			buf = append(buf, 'O')
		default:
			buf = append(buf, '.')
		}
	}
	return string(buf)
}
