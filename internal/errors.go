package internal

import "errors"

// Rejection errors. Each maps to a wire reason in action_rejected; none of
// them ever leaves a session partially mutated.
var (
	ErrRoomNotFound          = errors.New("room not found")
	ErrRoomFull              = errors.New("room full")
	ErrSessionAlreadyStarted = errors.New("session already started")
	ErrSessionNotStarted     = errors.New("session not started")
	ErrNotYourTurn           = errors.New("not your turn")
	ErrAlreadyDelivered      = errors.New("word already delivered")
	ErrRoundResolving        = errors.New("round is resolving")
	ErrCellOccupied          = errors.New("cell occupied")
	ErrOutOfBounds           = errors.New("out of bounds")
	ErrCapacityExceeded      = errors.New("room capacity exceeded")
	ErrNotHost               = errors.New("only the host may do that")
	ErrNotEnoughParticipants = errors.New("not enough participants")
	ErrUnbalancedTeams       = errors.New("both teams need at least one participant")
	ErrSessionAbandoned      = errors.New("session abandoned")
	ErrAlreadyInRoom         = errors.New("already in a room")
)

var rejectionReasons = map[error]string{
	ErrRoomNotFound:          "room_not_found",
	ErrRoomFull:              "room_full",
	ErrSessionAlreadyStarted: "session_already_started",
	ErrSessionNotStarted:     "session_not_started",
	ErrNotYourTurn:           "not_your_turn",
	ErrAlreadyDelivered:      "already_delivered",
	ErrRoundResolving:        "round_resolving",
	ErrCellOccupied:          "cell_occupied",
	ErrOutOfBounds:           "out_of_bounds",
	ErrCapacityExceeded:      "capacity_exceeded",
	ErrNotHost:               "not_host",
	ErrNotEnoughParticipants: "not_enough_participants",
	ErrUnbalancedTeams:       "unbalanced_teams",
	ErrSessionAbandoned:      "session_abandoned",
	ErrAlreadyInRoom:         "already_in_room",
}

// RejectionReason maps an error to the reason string clients receive.
func RejectionReason(err error) string {
	for sentinel, reason := range rejectionReasons {
		if errors.Is(err, sentinel) {
			return reason
		}
	}
	return "invalid_action"
}
