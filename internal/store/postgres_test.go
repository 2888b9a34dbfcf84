package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sketchwire/sketchwire/internal"
)

func setupStore(t *testing.T) *Postgres {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("sketchwire"),
		postgres.WithUsername("sketchwire"),
		postgres.WithPassword("sketchwire"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	require.NoError(t, s.EnsureSchema(ctx))
	return s
}

func TestPostgresStore(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	t.Run("word pool round trip", func(t *testing.T) {
		words, err := s.LoadWords(ctx)
		require.NoError(t, err)
		assert.Empty(t, words)

		require.NoError(t, s.SeedWords(ctx, []string{"guitar", "piano", "guitar"}))

		words, err = s.LoadWords(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"guitar", "piano"}, words, "duplicates collapse, order is alphabetical")
	})

	t.Run("round results", func(t *testing.T) {
		require.NoError(t, s.RecordResult(ctx, internal.RoundResult{
			RoomCode:   "AB12",
			Variant:    internal.VariantDraw,
			Word:       "guitar",
			WinnerID:   "p2",
			WinnerName: "Ben",
			ResolvedAt: time.Now(),
		}))
		require.NoError(t, s.RecordResult(ctx, internal.RoundResult{
			RoomCode:   "AB12",
			Variant:    internal.VariantBoard,
			Draw:       true,
			ResolvedAt: time.Now(),
		}))

		n, err := s.ResultCount(ctx, "AB12")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = s.ResultCount(ctx, "ZZZZ")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("schema creation is idempotent", func(t *testing.T) {
		require.NoError(t, s.EnsureSchema(ctx))
	})
}
