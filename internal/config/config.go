package config

import (
	"fmt"
	"time"

	"github.com/sketchwire/sketchwire/internal"
)

// Config carries everything the process needs at startup. Flags, SKETCHWIRE_*
// environment variables, and .env files all land here; nothing else reads
// the environment.
type Config struct {
	Bind              string
	Port              int
	MaxRooms          int
	MaxPlayersPerRoom int
	MinParticipants   int
	WordHistory       int
	ResolveDelay      time.Duration
	RoomIdleTimeout   time.Duration
	WordFile          string
	DatabaseURL       string
	Verbose           bool
	Version           bool
}

func Default() *Config {
	return &Config{
		Bind:              "0.0.0.0",
		Port:              8080,
		MaxRooms:          internal.DefaultMaxRooms,
		MaxPlayersPerRoom: internal.DefaultMaxParticipants,
		MinParticipants:   internal.MinParticipantsToStart,
		WordHistory:       internal.DefaultWordHistory,
		ResolveDelay:      internal.DefaultResolveDelay,
		RoomIdleTimeout:   internal.DefaultRoomIdleTimeout,
	}
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.MaxRooms < 1 {
		return fmt.Errorf("invalid max-rooms: %d", c.MaxRooms)
	}
	if c.MaxPlayersPerRoom < internal.BoardSeats {
		return fmt.Errorf("invalid max-players (must be at least %d): %d", internal.BoardSeats, c.MaxPlayersPerRoom)
	}
	if c.MinParticipants < internal.BoardSeats || c.MinParticipants > c.MaxPlayersPerRoom {
		return fmt.Errorf("invalid min-players (must be between %d and max-players): %d", internal.BoardSeats, c.MinParticipants)
	}
	if c.WordHistory < 0 {
		return fmt.Errorf("invalid word-history: %d", c.WordHistory)
	}
	if c.ResolveDelay <= 0 {
		return fmt.Errorf("invalid resolve-delay: %s", c.ResolveDelay)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}
