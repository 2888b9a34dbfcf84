package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/sketchwire/sketchwire/internal"
	"github.com/sketchwire/sketchwire/internal/utils"
)

// =============================================================================
// ROOM REGISTRY
// =============================================================================

// Registry owns the room map. Rooms are created, looked up, and torn down
// only through its methods; nothing else holds the map.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room

	maxRooms        int
	maxParticipants int
}

func NewRegistry(maxRooms, maxParticipants int) *Registry {
	if maxRooms <= 0 {
		maxRooms = internal.DefaultMaxRooms
	}
	if maxParticipants <= 0 {
		maxParticipants = internal.DefaultMaxParticipants
	}
	return &Registry{
		rooms:           make(map[string]*internal.Room),
		maxRooms:        maxRooms,
		maxParticipants: maxParticipants,
	}
}

// CreateRoom generates an unused code and creates a room with host as its
// first participant and privileged initiator.
func (reg *Registry) CreateRoom(variant internal.Variant, host *internal.Participant) (*internal.Room, error) {
	if variant != internal.VariantBoard {
		variant = internal.VariantDraw
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if len(reg.rooms) >= reg.maxRooms {
		log.Printf("[CreateRoom] room limit reached (%d), rejecting", reg.maxRooms)
		return nil, internal.ErrCapacityExceeded
	}

	code := utils.RandomCode(internal.RoomCodeLength)
	for _, taken := reg.rooms[code]; taken; _, taken = reg.rooms[code] {
		code = utils.RandomCode(internal.RoomCodeLength)
	}

	room := internal.NewRoom(code, variant)
	room.HostID = host.ID
	room.Participants[host.ID] = host
	room.JoinOrder = append(room.JoinOrder, host.ID)
	if variant == internal.VariantDraw {
		host.Team = room.TeamFor()
	}
	reg.rooms[code] = room

	log.Printf("[CreateRoom] room=%s variant=%s host=%s (%s)", code, variant, host.ID, host.Name)
	return room, nil
}

// Get looks up a room by code.
func (reg *Registry) Get(code string) (*internal.Room, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[code]
	if !ok {
		return nil, internal.ErrRoomNotFound
	}
	return room, nil
}

// JoinRoom adds p to the room identified by code. Board rooms have exactly
// two seats and reject late joins; drawing rooms admit mid-session joiners,
// who reconstruct state from the snapshot the caller sends them.
func (reg *Registry) JoinRoom(code string, p *internal.Participant) (*internal.Room, error) {
	room, err := reg.Get(code)
	if err != nil {
		return nil, err
	}

	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.Abandoned {
		return nil, internal.ErrRoomNotFound
	}

	switch room.Variant {
	case internal.VariantBoard:
		if room.Started {
			return nil, internal.ErrSessionAlreadyStarted
		}
		if len(room.Participants) >= internal.BoardSeats {
			return nil, internal.ErrRoomFull
		}
	default:
		if len(room.Participants) >= reg.maxParticipants {
			return nil, internal.ErrRoomFull
		}
	}

	if room.Variant == internal.VariantDraw {
		p.Team = room.TeamFor()
	}
	room.Participants[p.ID] = p
	room.JoinOrder = append(room.JoinOrder, p.ID)
	room.Touch()

	log.Printf("[JoinRoom] room=%s participant=%s (%s) team=%s total=%d",
		room.Code, p.ID, p.Name, p.Team, len(room.Participants))
	return room, nil
}

// Remove deletes a room and cancels any pending timer.
func (reg *Registry) Remove(code string) {
	reg.mu.Lock()
	room, ok := reg.rooms[code]
	delete(reg.rooms, code)
	reg.mu.Unlock()

	if !ok {
		return
	}

	room.Mu.Lock()
	if room.ResolveCancel != nil {
		room.ResolveCancel()
		room.ResolveCancel = nil
	}
	room.Mu.Unlock()

	log.Printf("[Remove] room=%s deleted", code)
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// RoomListing is the /rooms view of one joinable room.
type RoomListing struct {
	Code         string           `json:"code"`
	Variant      internal.Variant `json:"variant"`
	Participants int              `json:"participants"`
	Started      bool             `json:"started"`
}

// Listings returns rooms that can currently accept a join.
func (reg *Registry) Listings() []RoomListing {
	reg.mu.RLock()
	rooms := make([]*internal.Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.RUnlock()

	listings := make([]RoomListing, 0, len(rooms))
	for _, room := range rooms {
		room.Mu.RLock()
		joinable := !room.Abandoned
		if room.Variant == internal.VariantBoard {
			joinable = joinable && !room.Started && len(room.Participants) < internal.BoardSeats
		} else {
			joinable = joinable && len(room.Participants) < reg.maxParticipants
		}
		if joinable {
			listings = append(listings, RoomListing{
				Code:         room.Code,
				Variant:      room.Variant,
				Participants: len(room.Participants),
				Started:      room.Started,
			})
		}
		room.Mu.RUnlock()
	}
	return listings
}

// StartReaper deletes rooms that have been idle past maxIdle. Empty rooms
// are deleted immediately on the last disconnect; this catches rooms whose
// participants went quiet without closing.
func (reg *Registry) StartReaper(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				reg.reapIdle(maxIdle)
			}
		}
	}()
}

func (reg *Registry) reapIdle(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)

	reg.mu.RLock()
	stale := make([]string, 0)
	for code, room := range reg.rooms {
		room.Mu.RLock()
		if room.LastActivity.Before(cutoff) {
			stale = append(stale, code)
		}
		room.Mu.RUnlock()
	}
	reg.mu.RUnlock()

	for _, code := range stale {
		log.Printf("[reapIdle] room=%s idle past %s, removing", code, maxIdle)
		reg.Remove(code)
	}
}
