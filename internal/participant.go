package internal

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Conn is the connection surface a participant writes to. The websocket
// layer wraps *websocket.Conn; tests substitute in-memory fakes.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

type Participant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Team      Team      `json:"team,omitempty"`
	Mark      string    `json:"mark,omitempty"`
	Score     int       `json:"score"`
	Connected bool      `json:"connected"`
	JoinedAt  time.Time `json:"joined_at"`

	Conn    Conn          `json:"-"`
	Limiter *rate.Limiter `json:"-"`

	writeMu sync.Mutex
}

func NewParticipant(id string, conn Conn, limiter *rate.Limiter) *Participant {
	return &Participant{
		ID:        id,
		Conn:      conn,
		Limiter:   limiter,
		Connected: true,
		JoinedAt:  time.Now(),
	}
}

// SafeWriteJSON serializes writes to the underlying connection so
// concurrent broadcasts never interleave frames.
func (p *Participant) SafeWriteJSON(v any) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if p.Conn == nil {
		return nil
	}
	return p.Conn.WriteJSON(v)
}

type ParticipantSnapshot struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Team      Team   `json:"team,omitempty"`
	Mark      string `json:"mark,omitempty"`
	Score     int    `json:"score"`
	Connected bool   `json:"connected"`
	IsHost    bool   `json:"is_host"`
}

func (p *Participant) Snapshot(hostID string) ParticipantSnapshot {
	return ParticipantSnapshot{
		ID:        p.ID,
		Name:      p.Name,
		Team:      p.Team,
		Mark:      p.Mark,
		Score:     p.Score,
		Connected: p.Connected,
		IsHost:    p.ID == hostID,
	}
}
