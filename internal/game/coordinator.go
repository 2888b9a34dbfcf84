package game

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sketchwire/sketchwire/internal"
	"github.com/sketchwire/sketchwire/internal/utils"
)

// =============================================================================
// TURN COORDINATOR
// =============================================================================
//
// All transitions of the turn pointer and the awaiting-word flag happen
// here, under the room lock, one command at a time. Broadcast payloads are
// snapshotted before the lock is released.

var errVariantMismatch = errors.New("action not valid for this game variant")

// ResultSink receives a record per resolved round. The Postgres store
// implements it; a nil sink disables persistence.
type ResultSink interface {
	RecordResult(ctx context.Context, result internal.RoundResult) error
}

type CoordinatorOptions struct {
	ResolveDelay    time.Duration
	WordHistory     int
	MinParticipants int
	Results         ResultSink
}

type Coordinator struct {
	registry *Registry
	words    *WordPool

	resolveDelay    time.Duration
	wordHistory     int
	minParticipants int
	results         ResultSink
}

func NewCoordinator(registry *Registry, words *WordPool, opts CoordinatorOptions) *Coordinator {
	if opts.ResolveDelay <= 0 {
		opts.ResolveDelay = internal.DefaultResolveDelay
	}
	if opts.WordHistory <= 0 {
		opts.WordHistory = internal.DefaultWordHistory
	}
	if opts.MinParticipants < internal.MinParticipantsToStart {
		opts.MinParticipants = internal.MinParticipantsToStart
	}
	return &Coordinator{
		registry:        registry,
		words:           words,
		resolveDelay:    opts.ResolveDelay,
		wordHistory:     opts.WordHistory,
		minParticipants: opts.MinParticipants,
		results:         opts.Results,
	}
}

func (c *Coordinator) Registry() *Registry {
	return c.registry
}

// StartSession begins play. Host only; requires the variant's minimum
// participant count (and one participant per team for the drawing variant).
// The initial turn goes to the session creator.
func (c *Coordinator) StartSession(code, requesterID string) error {
	room, err := c.registry.Get(code)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	if err := validateStart(room, requesterID, c.minParticipants); err != nil {
		room.Mu.Unlock()
		return err
	}

	room.Started = true
	room.TurnID = room.JoinOrder[0]
	switch room.Variant {
	case internal.VariantBoard:
		room.Phase = internal.PhasePlaying
		room.AwaitingWord = false
		for i, id := range room.JoinOrder {
			if p := room.Participants[id]; p != nil {
				if i == 0 {
					p.Mark = internal.MarkX
				} else {
					p.Mark = internal.MarkO
				}
			}
		}
		room.BoardStarterID = room.TurnID
	default:
		room.Phase = internal.PhaseWaitingForWord
		room.AwaitingWord = true
	}
	room.Touch()
	snap := room.SnapshotLocked(utils.MaskWord)
	turnID := room.TurnID
	room.Mu.Unlock()

	log.Printf("[StartSession] room=%s variant=%s started, turn=%s", code, snap.Variant, turnID)

	BroadcastToRoom(room, internal.Message[internal.SessionStartedData]{
		Type: internal.EventSessionStarted,
		Data: internal.SessionStartedData{Snapshot: snap},
	})
	return nil
}

// RequestWord hands the round's secret word to the current turn holder,
// exactly once per turn. The word goes back to the requester only; everyone
// else gets the masked form. Duplicate or racing requests fail without
// touching state.
func (c *Coordinator) RequestWord(code, requesterID string) (string, error) {
	room, err := c.registry.Get(code)
	if err != nil {
		return "", err
	}

	room.Mu.Lock()
	if room.Variant != internal.VariantDraw {
		room.Mu.Unlock()
		return "", errVariantMismatch
	}
	if err := validateWordRequest(room, requesterID); err != nil {
		room.Mu.Unlock()
		return "", err
	}

	word := c.words.Pick(room.RecentWords)
	room.Word = word
	room.RecentWords = appendRecent(room.RecentWords, word, c.wordHistory)
	room.AwaitingWord = false
	room.Phase = internal.PhasePlaying
	room.Touch()
	masked := utils.MaskWord(word)
	turnID := room.TurnID
	room.Mu.Unlock()

	log.Printf("[RequestWord] room=%s word delivered to turn holder %s", code, requesterID)

	BroadcastToRoomExcept(room, internal.Message[internal.StateUpdateData]{
		Type: internal.EventStateUpdate,
		Data: internal.StateUpdateData{
			Kind:       internal.UpdateRoundStarted,
			TurnID:     turnID,
			MaskedWord: masked,
		},
	}, requesterID)

	return word, nil
}

// SubmitStroke forwards a stroke from the turn holder to everyone else and
// appends it to the current-round canvas buffer. Strokes are advisory
// rendering data; the buffer exists only so late joiners can redraw the
// round in progress, and it is cleared at round end.
func (c *Coordinator) SubmitStroke(code, senderID string, data internal.StrokeData) error {
	room, err := c.registry.Get(code)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	if room.Variant != internal.VariantDraw {
		room.Mu.Unlock()
		return errVariantMismatch
	}
	if err := validateStroke(room, senderID, data.Segment); err != nil {
		room.Mu.Unlock()
		return err
	}

	stroke := internal.StrokeSegment{Segment: data.Segment, Color: data.Color, Width: data.Width}
	room.Canvas = append(room.Canvas, stroke)
	room.Touch()
	room.Mu.Unlock()

	BroadcastToRoomExcept(room, internal.Message[internal.StateUpdateData]{
		Type: internal.EventStateUpdate,
		Data: internal.StateUpdateData{
			Kind:          internal.UpdateStroke,
			ParticipantID: senderID,
			Stroke:        &stroke,
		},
	}, senderID)
	return nil
}

// SubmitGuess evaluates a guess: case-insensitive, whitespace-trimmed,
// equals-compare. The first match wins the round; wrong guesses are
// broadcast chat-style and mutate nothing.
func (c *Coordinator) SubmitGuess(code, senderID, value string) error {
	room, err := c.registry.Get(code)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	p := room.Participants[senderID]
	if p == nil {
		room.Mu.Unlock()
		return internal.ErrRoomNotFound
	}
	if room.Variant != internal.VariantDraw {
		room.Mu.Unlock()
		return errVariantMismatch
	}
	if err := validateGuess(room, senderID); err != nil {
		room.Mu.Unlock()
		return err
	}

	guess := utils.NormalizeGuess(value)
	target := utils.NormalizeGuess(room.Word)

	if room.Word == "" || guess != target {
		update := internal.StateUpdateData{
			Kind:          internal.UpdateGuess,
			ParticipantID: p.ID,
			Name:          p.Name,
			Guess:         value,
		}
		room.Mu.Unlock()

		BroadcastToRoom(room, internal.Message[internal.StateUpdateData]{
			Type: internal.EventStateUpdate,
			Data: update,
		})
		return nil
	}

	// Correct guess: score, announce, and schedule the turn handover.
	p.Score++
	room.TeamScores[p.Team]++
	room.Resolving = true
	room.Phase = internal.PhaseResolving
	word := room.Word
	resolved := internal.RoundResolvedData{
		Word:        word,
		WinnerID:    p.ID,
		WinnerName:  p.Name,
		WinnerTeam:  p.Team,
		Scores:      room.ScoreboardLocked(),
		TeamScores:  map[internal.Team]int{internal.TeamA: room.TeamScores[internal.TeamA], internal.TeamB: room.TeamScores[internal.TeamB]},
		NextTurnID:  room.NextTurnID(),
		ResolveMsec: c.resolveDelay.Milliseconds(),
	}
	result := internal.RoundResult{
		RoomCode:   room.Code,
		Variant:    room.Variant,
		Word:       word,
		WinnerID:   p.ID,
		WinnerName: p.Name,
		ResolvedAt: time.Now(),
	}
	c.startResolveTimer(room, func() { c.finishDrawRound(room) })
	room.Touch()
	room.Mu.Unlock()

	log.Printf("[SubmitGuess] room=%s %s (%s) guessed %q, round resolving", code, p.ID, p.Name, word)

	BroadcastToRoom(room, internal.Message[internal.RoundResolvedData]{
		Type: internal.EventRoundResolved,
		Data: resolved,
	})
	c.recordResult(result)
	return nil
}

// finishDrawRound runs when the announcement delay expires: clear the
// round, hand the turn to the next participant, and re-sync everyone with
// a snapshot.
func (c *Coordinator) finishDrawRound(room *internal.Room) {
	room.Mu.Lock()
	// If a disconnect already advanced the turn while the timer's deadline
	// was firing, Resolving is false and this expiry is stale.
	if room.Abandoned || !room.Resolving {
		room.Mu.Unlock()
		return
	}
	room.Resolving = false
	room.ResolveCancel = nil
	room.Word = ""
	room.Canvas = room.Canvas[:0]
	c.advanceTurnLocked(room, "round_resolved")
	room.Mu.Unlock()

	BroadcastSnapshot(room)
}

// SubmitMove applies a board move from the turn holder. A move that ends
// the game scores the winner and schedules a board reset; otherwise the
// turn alternates.
func (c *Coordinator) SubmitMove(code, senderID string, move internal.MoveValue) error {
	room, err := c.registry.Get(code)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	p := room.Participants[senderID]
	if p == nil {
		room.Mu.Unlock()
		return internal.ErrRoomNotFound
	}
	if room.Variant != internal.VariantBoard || room.Board == nil {
		room.Mu.Unlock()
		return errVariantMismatch
	}
	if err := validateMove(room, senderID); err != nil {
		room.Mu.Unlock()
		return err
	}
	if err := room.Board.Apply(move.Row, move.Col, p.Mark); err != nil {
		room.Mu.Unlock()
		return err
	}

	moveUpdate := internal.StateUpdateData{
		Kind:          internal.UpdateMove,
		ParticipantID: p.ID,
		Move:          &internal.MoveValue{Row: move.Row, Col: move.Col},
		Mark:          p.Mark,
	}

	mark, won := room.Board.Winner()
	full := room.Board.Full()
	room.Touch()

	if !won && !full {
		room.TurnID = room.NextTurnID()
		moveUpdate.TurnID = room.TurnID
		room.Mu.Unlock()

		BroadcastToRoom(room, internal.Message[internal.StateUpdateData]{
			Type: internal.EventStateUpdate,
			Data: moveUpdate,
		})
		return nil
	}

	resolved := internal.RoundResolvedData{
		ResolveMsec: c.resolveDelay.Milliseconds(),
	}
	result := internal.RoundResult{
		RoomCode:   room.Code,
		Variant:    room.Variant,
		ResolvedAt: time.Now(),
	}
	if won && mark == p.Mark {
		p.Score++
		resolved.WinnerID = p.ID
		resolved.WinnerName = p.Name
		result.WinnerID = p.ID
		result.WinnerName = p.Name
	} else {
		resolved.Draw = true
		result.Draw = true
	}
	room.Resolving = true
	room.Phase = internal.PhaseResolving
	resolved.Scores = room.ScoreboardLocked()
	c.startResolveTimer(room, func() { c.finishBoardRound(room) })
	room.Mu.Unlock()

	log.Printf("[SubmitMove] room=%s move by %s resolved round (winner=%q draw=%v)",
		code, senderID, resolved.WinnerID, resolved.Draw)

	BroadcastToRoom(room, internal.Message[internal.StateUpdateData]{
		Type: internal.EventStateUpdate,
		Data: moveUpdate,
	})
	BroadcastToRoom(room, internal.Message[internal.RoundResolvedData]{
		Type: internal.EventRoundResolved,
		Data: resolved,
	})
	c.recordResult(result)
	return nil
}

// finishBoardRound resets the grid after the announcement delay. Scores
// persist; the seat that did not open the previous round opens this one.
func (c *Coordinator) finishBoardRound(room *internal.Room) {
	room.Mu.Lock()
	if room.Abandoned || !room.Resolving {
		room.Mu.Unlock()
		return
	}
	room.Resolving = false
	room.ResolveCancel = nil
	room.Board.Reset()

	next := ""
	for _, id := range room.JoinOrder {
		if id == room.BoardStarterID {
			continue
		}
		if p := room.Participants[id]; p != nil && p.Connected {
			next = id
			break
		}
	}
	if next == "" {
		next = room.NextTurnID()
	}
	room.BoardStarterID = next
	room.TurnID = next
	room.Phase = internal.PhasePlaying
	room.Mu.Unlock()

	BroadcastSnapshot(room)
}

// ClearCanvas wipes the shared drawing surface; turn holder only. The
// clear is echoed to everyone, sender included.
func (c *Coordinator) ClearCanvas(code, senderID string) error {
	room, err := c.registry.Get(code)
	if err != nil {
		return err
	}

	room.Mu.Lock()
	if room.Variant != internal.VariantDraw {
		room.Mu.Unlock()
		return errVariantMismatch
	}
	if err := validateClear(room, senderID); err != nil {
		room.Mu.Unlock()
		return err
	}
	room.Canvas = room.Canvas[:0]
	room.Touch()
	room.Mu.Unlock()

	BroadcastToRoom(room, internal.Message[internal.StateUpdateData]{
		Type: internal.EventStateUpdate,
		Data: internal.StateUpdateData{Kind: internal.UpdateClear, ParticipantID: senderID},
	})
	return nil
}

// advanceTurnLocked moves the turn pointer to the next eligible participant
// in join order, skipping disconnected ones. Caller holds Mu.
func (c *Coordinator) advanceTurnLocked(room *internal.Room, reason string) {
	c.setTurnLocked(room, room.NextTurnID(), reason)
}

// setTurnLocked hands the turn to next, which the caller has already chosen.
// Caller holds Mu.
func (c *Coordinator) setTurnLocked(room *internal.Room, next, reason string) {
	room.TurnID = next
	if next == "" {
		return
	}
	switch room.Variant {
	case internal.VariantDraw:
		room.AwaitingWord = true
		room.Word = ""
		room.Phase = internal.PhaseWaitingForWord
	default:
		room.Phase = internal.PhasePlaying
	}
	log.Printf("[advanceTurn] room=%s turn -> %s (reason=%s)", room.Code, next, reason)
}

// recordResult persists asynchronously; round flow never waits on storage.
func (c *Coordinator) recordResult(result internal.RoundResult) {
	if c.results == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.results.RecordResult(ctx, result); err != nil {
			log.Printf("[recordResult] room=%s failed to persist result: %v", result.RoomCode, err)
		}
	}()
}
