package game

import (
	"github.com/sketchwire/sketchwire/internal"
)

// =============================================================================
// ACTION VALIDATOR
// =============================================================================
//
// Every inbound action is checked here against current session state before
// anything mutates: check-then-act, never act-then-rollback. All functions
// assume the caller holds the room lock.

func validateStart(room *internal.Room, requesterID string, minParticipants int) error {
	if room.Abandoned {
		return internal.ErrSessionAbandoned
	}
	if room.Started {
		return internal.ErrSessionAlreadyStarted
	}
	if requesterID != room.HostID {
		return internal.ErrNotHost
	}

	min := minParticipants
	if room.Variant == internal.VariantBoard {
		min = internal.BoardSeats
	}
	if room.ConnectedCount() < min {
		return internal.ErrNotEnoughParticipants
	}
	if room.Variant == internal.VariantDraw && !room.HasBothTeams() {
		return internal.ErrUnbalancedTeams
	}
	return nil
}

// validateWordRequest guards the privileged-content path. Duplicate and
// racing requests are the documented client failure mode, so the two
// rejection cases are distinct: wrong requester vs. already delivered.
func validateWordRequest(room *internal.Room, requesterID string) error {
	if room.Abandoned {
		return internal.ErrSessionAbandoned
	}
	if !room.Started {
		return internal.ErrSessionNotStarted
	}
	if room.Resolving {
		return internal.ErrRoundResolving
	}
	if requesterID != room.TurnID {
		return internal.ErrNotYourTurn
	}
	if !room.AwaitingWord {
		return internal.ErrAlreadyDelivered
	}
	return nil
}

func validateStroke(room *internal.Room, senderID string, seg internal.Segment) error {
	if room.Abandoned {
		return internal.ErrSessionAbandoned
	}
	if !room.Started {
		return internal.ErrSessionNotStarted
	}
	if room.Resolving {
		return internal.ErrRoundResolving
	}
	if senderID != room.TurnID {
		return internal.ErrNotYourTurn
	}
	if room.AwaitingWord {
		// No drawing before the word is delivered.
		return internal.ErrNotYourTurn
	}
	return checkSegmentBounds(seg)
}

// checkSegmentBounds is the only spatial validation strokes get; they are
// advisory rendering data, not authoritative state.
func checkSegmentBounds(seg internal.Segment) error {
	for _, v := range []float64{seg.X1, seg.X2} {
		if v < 0 || v > internal.CanvasWidth {
			return internal.ErrOutOfBounds
		}
	}
	for _, v := range []float64{seg.Y1, seg.Y2} {
		if v < 0 || v > internal.CanvasHeight {
			return internal.ErrOutOfBounds
		}
	}
	return nil
}

func validateGuess(room *internal.Room, senderID string) error {
	if room.Abandoned {
		return internal.ErrSessionAbandoned
	}
	if !room.Started {
		return internal.ErrSessionNotStarted
	}
	if room.Resolving {
		return internal.ErrRoundResolving
	}
	if senderID == room.TurnID {
		// The drawer knows the word; their guesses are rejected outright.
		return internal.ErrNotYourTurn
	}
	return nil
}

func validateMove(room *internal.Room, senderID string) error {
	if room.Abandoned {
		return internal.ErrSessionAbandoned
	}
	if !room.Started {
		return internal.ErrSessionNotStarted
	}
	if room.Resolving {
		return internal.ErrRoundResolving
	}
	if senderID != room.TurnID {
		return internal.ErrNotYourTurn
	}
	return nil
}

func validateClear(room *internal.Room, senderID string) error {
	if room.Abandoned {
		return internal.ErrSessionAbandoned
	}
	if !room.Started {
		return internal.ErrSessionNotStarted
	}
	if room.Resolving {
		return internal.ErrRoundResolving
	}
	if senderID != room.TurnID {
		return internal.ErrNotYourTurn
	}
	return nil
}
