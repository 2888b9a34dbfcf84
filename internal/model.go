package internal

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultMaxRooms        = 256
	DefaultMaxParticipants = 10
	MinParticipantsToStart = 2
	BoardSeats             = 2
	DefaultResolveDelay    = 4 * time.Second
	DefaultWordHistory     = 16
	DefaultRoomIdleTimeout = 30 * time.Minute
	RoomCodeLength         = 4
	CanvasWidth            = 2000
	CanvasHeight           = 2000
)

// Variant selects which game a room plays. The board variant is the same
// state machine with a two-seat alternating turn rule and no secret word.
type Variant string

const (
	VariantDraw  Variant = "draw"
	VariantBoard Variant = "board"
)

type Phase string

const (
	PhaseLobby          Phase = "lobby"
	PhaseWaitingForWord Phase = "waiting_for_word"
	PhasePlaying        Phase = "playing"
	PhaseResolving      Phase = "resolving"
	PhaseAbandoned      Phase = "abandoned"
)

type Team string

const (
	TeamNone Team = ""
	TeamA    Team = "A"
	TeamB    Team = "B"
)

// Segment is one stroke segment in client canvas coordinates.
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type StrokeSegment struct {
	Segment Segment `json:"segment"`
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
}

// Room owns the authoritative session state for one room code. Every field
// below is guarded by Mu; commands are validated and applied one at a time
// under the lock, and broadcast payloads are snapshotted before release.
type Room struct {
	Code    string
	Variant Variant
	HostID  string

	Participants map[string]*Participant
	JoinOrder    []string

	Started      bool
	Phase        Phase
	TurnID       string
	AwaitingWord bool
	Word         string
	RecentWords  []string

	Canvas []StrokeSegment
	Board  *Board

	// BoardStarterID is whoever opened the current board round; the other
	// seat opens the next one.
	BoardStarterID string

	TeamScores map[Team]int

	Resolving     bool
	ResolveCancel context.CancelFunc

	Abandoned bool

	CreatedAt    time.Time
	LastActivity time.Time

	Mu sync.RWMutex
}

func NewRoom(code string, variant Variant) *Room {
	room := &Room{
		Code:         code,
		Variant:      variant,
		Participants: make(map[string]*Participant),
		JoinOrder:    make([]string, 0),
		Phase:        PhaseLobby,
		Canvas:       make([]StrokeSegment, 0),
		TeamScores:   map[Team]int{TeamA: 0, TeamB: 0},
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
	}
	if variant == VariantBoard {
		room.Board = NewBoard()
	}
	return room
}

// Touch records activity for idle reaping. Caller holds Mu.
func (r *Room) Touch() {
	r.LastActivity = time.Now()
}

// ConnectedCount reports connected participants. Caller holds Mu.
func (r *Room) ConnectedCount() int {
	count := 0
	for _, p := range r.Participants {
		if p.Connected {
			count++
		}
	}
	return count
}

// NextTurnID walks the join order from the current holder and returns the
// next connected participant, or "" if none qualifies. Caller holds Mu.
func (r *Room) NextTurnID() string {
	if len(r.JoinOrder) == 0 {
		return ""
	}

	start := 0
	for i, id := range r.JoinOrder {
		if id == r.TurnID {
			start = i
			break
		}
	}

	for offset := 1; offset <= len(r.JoinOrder); offset++ {
		id := r.JoinOrder[(start+offset)%len(r.JoinOrder)]
		if p := r.Participants[id]; p != nil && p.Connected {
			return id
		}
	}
	return ""
}

// TeamFor picks the smaller team for a joining participant. Caller holds Mu.
func (r *Room) TeamFor() Team {
	countA, countB := 0, 0
	for _, p := range r.Participants {
		switch p.Team {
		case TeamA:
			countA++
		case TeamB:
			countB++
		}
	}
	if countB < countA {
		return TeamB
	}
	return TeamA
}

// HasBothTeams reports whether each team has at least one connected
// participant. Caller holds Mu.
func (r *Room) HasBothTeams() bool {
	hasA, hasB := false, false
	for _, p := range r.Participants {
		if !p.Connected {
			continue
		}
		switch p.Team {
		case TeamA:
			hasA = true
		case TeamB:
			hasB = true
		}
	}
	return hasA && hasB
}
