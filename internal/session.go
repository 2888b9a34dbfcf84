package internal

import "sort"

// RoomSnapshot is the full, idempotent state a client needs to reconstruct
// its view. Sent on join and after every round resolution; incremental
// events assume the client holds the latest one. The secret word is never
// included, only its mask.
type RoomSnapshot struct {
	Code         string                `json:"code"`
	Variant      Variant               `json:"variant"`
	Phase        Phase                 `json:"phase"`
	HostID       string                `json:"host_id"`
	Started      bool                  `json:"started"`
	TurnID       string                `json:"turn_id,omitempty"`
	AwaitingWord bool                  `json:"awaiting_word"`
	MaskedWord   string                `json:"masked_word,omitempty"`
	Participants []ParticipantSnapshot `json:"participants"`
	TeamScores   map[Team]int          `json:"team_scores,omitempty"`
	Canvas       []StrokeSegment       `json:"canvas,omitempty"`
	Board        *Board                `json:"board,omitempty"`
	Resolving    bool                  `json:"resolving"`
}

// SnapshotLocked builds a RoomSnapshot. Caller holds Mu (read or write).
func (r *Room) SnapshotLocked(maskWord func(string) string) RoomSnapshot {
	participants := make([]ParticipantSnapshot, 0, len(r.Participants))
	for _, id := range r.JoinOrder {
		if p := r.Participants[id]; p != nil {
			participants = append(participants, p.Snapshot(r.HostID))
		}
	}
	sort.SliceStable(participants, func(i, j int) bool {
		return participants[i].ID < participants[j].ID
	})

	snap := RoomSnapshot{
		Code:         r.Code,
		Variant:      r.Variant,
		Phase:        r.Phase,
		HostID:       r.HostID,
		Started:      r.Started,
		TurnID:       r.TurnID,
		AwaitingWord: r.AwaitingWord,
		Participants: participants,
		Resolving:    r.Resolving,
	}

	switch r.Variant {
	case VariantDraw:
		if r.Word != "" && maskWord != nil {
			snap.MaskedWord = maskWord(r.Word)
		}
		snap.TeamScores = map[Team]int{TeamA: r.TeamScores[TeamA], TeamB: r.TeamScores[TeamB]}
		snap.Canvas = append([]StrokeSegment(nil), r.Canvas...)
	case VariantBoard:
		if r.Board != nil {
			boardCopy := *r.Board
			snap.Board = &boardCopy
		}
	}

	return snap
}

// ScoreboardLocked returns participant snapshots ordered by score, highest
// first. Caller holds Mu.
func (r *Room) ScoreboardLocked() []ParticipantSnapshot {
	scores := make([]ParticipantSnapshot, 0, len(r.Participants))
	for _, p := range r.Participants {
		scores = append(scores, p.Snapshot(r.HostID))
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].ID < scores[j].ID
	})
	return scores
}
