package internal

import "time"

// RoundResult is the record persisted (when a store is configured) each
// time a round resolves.
type RoundResult struct {
	RoomCode   string
	Variant    Variant
	Word       string
	WinnerID   string
	WinnerName string
	Draw       bool
	ResolvedAt time.Time
}
