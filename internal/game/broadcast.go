package game

import (
	"log"

	"github.com/sketchwire/sketchwire/internal"
	"github.com/sketchwire/sketchwire/internal/utils"
)

// =============================================================================
// BROADCAST DISPATCHER
// =============================================================================

// BroadcastToRoom fans a message out to every connected participant.
// The participant set is snapshotted under a read lock; each write then
// runs on its own goroutine against the per-connection write mutex, so a
// slow or dead client never blocks the room or the other participants.
func BroadcastToRoom(room *internal.Room, msg any) {
	BroadcastToRoomExcept(room, msg, "")
}

// BroadcastToRoomExcept is BroadcastToRoom minus one participant, used for
// events the sender already knows about (their own strokes) or must not
// see (the unmasked word path never goes through here at all).
func BroadcastToRoomExcept(room *internal.Room, msg any, exceptID string) {
	room.Mu.RLock()
	targets := make([]*internal.Participant, 0, len(room.Participants))
	for _, p := range room.Participants {
		if p.Connected && p.ID != exceptID {
			targets = append(targets, p)
		}
	}
	roomCode := room.Code
	room.Mu.RUnlock()

	for _, p := range targets {
		go func(p *internal.Participant) {
			if err := p.SafeWriteJSON(msg); err != nil {
				log.Printf("[BroadcastToRoomExcept] room=%s write to %s (%s) failed: %v",
					roomCode, p.ID, p.Name, err)
			}
		}(p)
	}
}

// SendTo delivers a message to a single participant. Used for everything
// addressed rather than broadcast: direct replies, rejections, and the
// privileged word.
func SendTo(p *internal.Participant, msg any) error {
	return p.SafeWriteJSON(msg)
}

// BroadcastSnapshot sends the full state snapshot to everyone. Snapshots
// are idempotent; a client can apply one at any time to converge.
func BroadcastSnapshot(room *internal.Room) {
	room.Mu.RLock()
	snap := room.SnapshotLocked(utils.MaskWord)
	room.Mu.RUnlock()

	BroadcastToRoom(room, internal.Message[internal.RoomSnapshot]{
		Type: internal.EventStateSnapshot,
		Data: snap,
	})
}
