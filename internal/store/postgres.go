package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sketchwire/sketchwire/internal"
)

// =============================================================================
// POSTGRES PERSISTENCE
// =============================================================================
//
// The database is a sidecar, not the source of truth: live session state
// lives in memory and the store only feeds the word pool and keeps a record
// of resolved rounds. The server runs fine without it.

type Postgres struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (s *Postgres) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS words (
	word TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS round_results (
	id           BIGSERIAL PRIMARY KEY,
	room_code    TEXT        NOT NULL,
	variant      TEXT        NOT NULL,
	word         TEXT        NOT NULL DEFAULT '',
	winner_id    TEXT        NOT NULL DEFAULT '',
	winner_name  TEXT        NOT NULL DEFAULT '',
	draw         BOOLEAN     NOT NULL DEFAULT FALSE,
	resolved_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS round_results_room_idx ON round_results (room_code);
`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// LoadWords returns the stored word pool. An empty result is not an error;
// the caller falls back to its bundled list.
func (s *Postgres) LoadWords(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT word FROM words ORDER BY word`)
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	return words, nil
}

// SeedWords inserts words, skipping any already present.
func (s *Postgres) SeedWords(ctx context.Context, words []string) error {
	for _, w := range words {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO words (word) VALUES ($1) ON CONFLICT DO NOTHING`, w); err != nil {
			return fmt.Errorf("seed word %q: %w", w, err)
		}
	}
	return nil
}

func (s *Postgres) RecordResult(ctx context.Context, res internal.RoundResult) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO round_results (room_code, variant, word, winner_id, winner_name, draw, resolved_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		res.RoomCode, string(res.Variant), res.Word, res.WinnerID, res.WinnerName, res.Draw, res.ResolvedAt)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

// ResultCount reports how many rounds a room has resolved.
func (s *Postgres) ResultCount(ctx context.Context, roomCode string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM round_results WHERE room_code = $1`, roomCode).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

func (s *Postgres) Close() {
	log.Printf("[Postgres] closing connection pool")
	s.pool.Close()
}
