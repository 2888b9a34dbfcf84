package game

import (
	"log"
	"slices"

	"github.com/sketchwire/sketchwire/internal"
)

// =============================================================================
// DISCONNECT HANDLING
// =============================================================================

// HandleDisconnect reacts to participant loss: the participant leaves the
// session, the turn moves on if they held it, and the room is abandoned
// (with a broadcast, never a silent hang) when it drops below the minimum.
// An empty room is deleted immediately.
func (c *Coordinator) HandleDisconnect(code, participantID string) {
	room, err := c.registry.Get(code)
	if err != nil {
		return
	}

	room.Mu.Lock()
	p := room.Participants[participantID]
	if p == nil {
		room.Mu.Unlock()
		return
	}

	p.Connected = false
	heldTurn := room.TurnID == participantID

	// The successor must be computed while the holder still anchors the
	// join order; once they are removed the rotation loses its start point.
	successor := ""
	if heldTurn {
		successor = room.NextTurnID()
	}

	delete(room.Participants, participantID)
	room.JoinOrder = slices.DeleteFunc(room.JoinOrder, func(id string) bool {
		return id == participantID
	})

	name := p.Name
	remaining := len(room.Participants)

	log.Printf("[HandleDisconnect] room=%s participant=%s (%s) left, remaining=%d heldTurn=%v",
		code, participantID, name, remaining, heldTurn)

	if remaining == 0 {
		room.Mu.Unlock()
		c.registry.Remove(code)
		return
	}

	if room.HostID == participantID {
		room.HostID = room.JoinOrder[0]
		log.Printf("[HandleDisconnect] room=%s host left, promoting %s", code, room.HostID)
	}

	min := c.minParticipants
	if room.Variant == internal.VariantBoard {
		min = internal.BoardSeats
	}

	abandoned := false
	turnChanged := false
	if room.Started && !room.Abandoned && room.ConnectedCount() < min {
		room.Abandoned = true
		room.Phase = internal.PhaseAbandoned
		room.TurnID = ""
		room.AwaitingWord = false
		if room.ResolveCancel != nil {
			room.ResolveCancel()
			room.ResolveCancel = nil
		}
		room.Resolving = false
		abandoned = true
	} else if heldTurn && room.Started && !room.Abandoned {
		// A pending word request dies with its requester; the timer, if
		// any, is superseded by the turn change.
		if room.ResolveCancel != nil {
			room.ResolveCancel()
			room.ResolveCancel = nil
		}
		room.Resolving = false
		room.Canvas = room.Canvas[:0]
		c.setTurnLocked(room, successor, "disconnect")
		turnChanged = true
	}

	leftUpdate := internal.StateUpdateData{
		Kind:          internal.UpdateParticipantLeft,
		ParticipantID: participantID,
		Name:          name,
		Count:         remaining,
	}
	room.Touch()
	room.Mu.Unlock()

	BroadcastToRoom(room, internal.Message[internal.StateUpdateData]{
		Type: internal.EventStateUpdate,
		Data: leftUpdate,
	})

	if abandoned {
		log.Printf("[HandleDisconnect] room=%s below minimum, session abandoned", code)
		BroadcastToRoom(room, internal.Message[internal.SessionAbandonedData]{
			Type: internal.EventSessionAbandoned,
			Data: internal.SessionAbandonedData{RoomCode: code, Reason: "below_minimum"},
		})
		return
	}
	if turnChanged {
		BroadcastSnapshot(room)
	}
}
