package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	t.Run("port range", func(t *testing.T) {
		cfg := Default()
		cfg.Port = 0
		assert.Error(t, cfg.Validate())
		cfg.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("minimum players bounded by maximum", func(t *testing.T) {
		cfg := Default()
		cfg.MinParticipants = cfg.MaxPlayersPerRoom + 1
		assert.Error(t, cfg.Validate())

		cfg = Default()
		cfg.MinParticipants = 1
		assert.Error(t, cfg.Validate())
	})

	t.Run("resolve delay must be positive", func(t *testing.T) {
		cfg := Default()
		cfg.ResolveDelay = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestAddr(t *testing.T) {
	cfg := Default()
	cfg.Bind = "127.0.0.1"
	cfg.Port = 9000
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr())
}
