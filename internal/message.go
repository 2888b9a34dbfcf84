package internal

// Message is the envelope for every frame in both directions.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Client -> server event types.
const (
	EventCreateRoom   = "create_room"
	EventJoinRoom     = "join_room"
	EventStartSession = "start_session"
	EventRequestWord  = "request_privileged_content"
	EventSubmitStroke = "submit_stroke"
	EventSubmitGuess  = "submit_guess"
	EventSubmitMove   = "submit_move"
	EventClearSurface = "clear_surface"
)

// Server -> client event types.
const (
	EventRoomCreated       = "room_created"
	EventRoomJoined        = "room_joined"
	EventParticipantJoined = "participant_joined"
	EventSessionStarted    = "session_started"
	EventPrivilegedContent = "privileged_content"
	EventStateUpdate       = "state_update"
	EventStateSnapshot     = "state_snapshot"
	EventRoundResolved     = "round_resolved"
	EventSessionAbandoned  = "session_abandoned"
	EventActionRejected    = "action_rejected"
)

// Incremental update kinds carried inside state_update.
const (
	UpdateStroke          = "stroke"
	UpdateGuess           = "guess"
	UpdateMove            = "move"
	UpdateClear           = "clear"
	UpdateTurn            = "turn"
	UpdateRoundStarted    = "round_started"
	UpdateParticipantLeft = "participant_left"
)

type CreateRoomData struct {
	DisplayName string  `json:"display_name"`
	Variant     Variant `json:"variant,omitempty"`
}

type JoinRoomData struct {
	RoomCode    string `json:"room_code"`
	DisplayName string `json:"display_name"`
}

type RoomRefData struct {
	RoomCode string `json:"room_code"`
}

type StrokeData struct {
	RoomCode string  `json:"room_code"`
	Segment  Segment `json:"segment"`
	Color    string  `json:"color"`
	Width    float64 `json:"width"`
}

type GuessData struct {
	RoomCode string `json:"room_code"`
	Value    string `json:"value"`
}

type MoveValue struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type MoveData struct {
	RoomCode string    `json:"room_code"`
	Value    MoveValue `json:"value"`
}

type RoomCreatedData struct {
	RoomCode      string       `json:"room_code"`
	ParticipantID string       `json:"participant_id"`
	IsHost        bool         `json:"is_host"`
	Snapshot      RoomSnapshot `json:"snapshot"`
}

type RoomJoinedData struct {
	RoomCode      string       `json:"room_code"`
	ParticipantID string       `json:"participant_id"`
	IsHost        bool         `json:"is_host"`
	Snapshot      RoomSnapshot `json:"snapshot"`
}

type ParticipantJoinedData struct {
	Participant ParticipantSnapshot `json:"participant"`
	Count       int                 `json:"count"`
}

type SessionStartedData struct {
	Snapshot RoomSnapshot `json:"snapshot"`
}

type PrivilegedContentData struct {
	Word string `json:"word"`
}

// StateUpdateData is the incremental event payload; only the fields
// relevant to Kind are populated.
type StateUpdateData struct {
	Kind          string         `json:"kind"`
	ParticipantID string         `json:"participant_id,omitempty"`
	Name          string         `json:"name,omitempty"`
	Guess         string         `json:"guess,omitempty"`
	Stroke        *StrokeSegment `json:"stroke,omitempty"`
	Move          *MoveValue     `json:"move,omitempty"`
	Mark          string         `json:"mark,omitempty"`
	TurnID        string         `json:"turn_id,omitempty"`
	AwaitingWord  bool           `json:"awaiting_word,omitempty"`
	MaskedWord    string         `json:"masked_word,omitempty"`
	Count         int            `json:"count,omitempty"`
	Reason        string         `json:"reason,omitempty"`
}

type RoundResolvedData struct {
	Word        string                `json:"word,omitempty"`
	WinnerID    string                `json:"winner_id,omitempty"`
	WinnerName  string                `json:"winner_name,omitempty"`
	WinnerTeam  Team                  `json:"winner_team,omitempty"`
	Draw        bool                  `json:"draw,omitempty"`
	Scores      []ParticipantSnapshot `json:"scores"`
	TeamScores  map[Team]int          `json:"team_scores,omitempty"`
	NextTurnID  string                `json:"next_turn_id,omitempty"`
	ResolveMsec int64                 `json:"resolve_msec"`
}

type SessionAbandonedData struct {
	RoomCode string `json:"room_code"`
	Reason   string `json:"reason"`
}

type ActionRejectedData struct {
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}
