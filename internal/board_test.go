package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardApply(t *testing.T) {
	t.Run("rejects out of range before mutating", func(t *testing.T) {
		b := NewBoard()
		require.ErrorIs(t, b.Apply(3, 0, MarkX), ErrOutOfBounds)
		require.ErrorIs(t, b.Apply(0, -1, MarkX), ErrOutOfBounds)
		assert.Equal(t, 0, b.Moves)
	})

	t.Run("rejects occupied cell", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.Apply(1, 1, MarkX))
		require.ErrorIs(t, b.Apply(1, 1, MarkO), ErrCellOccupied)
		assert.Equal(t, MarkX, b.Cells[1][1])
		assert.Equal(t, 1, b.Moves)
	})
}

func TestBoardWinner(t *testing.T) {
	t.Run("row win", func(t *testing.T) {
		b := NewBoard()
		for col := 0; col < BoardSize; col++ {
			require.NoError(t, b.Apply(0, col, MarkX))
		}
		mark, won := b.Winner()
		assert.True(t, won)
		assert.Equal(t, MarkX, mark)
	})

	t.Run("column win", func(t *testing.T) {
		b := NewBoard()
		for row := 0; row < BoardSize; row++ {
			require.NoError(t, b.Apply(row, 2, MarkO))
		}
		mark, won := b.Winner()
		assert.True(t, won)
		assert.Equal(t, MarkO, mark)
	})

	t.Run("diagonal win", func(t *testing.T) {
		b := NewBoard()
		require.NoError(t, b.Apply(0, 2, MarkX))
		require.NoError(t, b.Apply(1, 1, MarkX))
		require.NoError(t, b.Apply(2, 0, MarkX))
		mark, won := b.Winner()
		assert.True(t, won)
		assert.Equal(t, MarkX, mark)
	})

	t.Run("no winner on empty board", func(t *testing.T) {
		_, won := NewBoard().Winner()
		assert.False(t, won)
	})
}

func TestBoardDrawAndReset(t *testing.T) {
	b := NewBoard()

	// X O X / X O O / O X X fills the grid without a line.
	moves := []struct {
		row, col int
		mark     string
	}{
		{0, 0, MarkX}, {0, 1, MarkO}, {0, 2, MarkX},
		{1, 0, MarkX}, {1, 1, MarkO}, {1, 2, MarkO},
		{2, 0, MarkO}, {2, 1, MarkX}, {2, 2, MarkX},
	}
	for _, m := range moves {
		require.NoError(t, b.Apply(m.row, m.col, m.mark))
	}

	_, won := b.Winner()
	assert.False(t, won)
	assert.True(t, b.Full())

	b.Reset()
	assert.False(t, b.Full())
	assert.Equal(t, 0, b.Moves)
	assert.Equal(t, "", b.Cells[0][0])
}

func TestNextTurnID(t *testing.T) {
	room := NewRoom("TEST", VariantDraw)
	for _, id := range []string{"a", "b", "c"} {
		room.Participants[id] = &Participant{ID: id, Connected: true}
		room.JoinOrder = append(room.JoinOrder, id)
	}
	room.TurnID = "a"

	assert.Equal(t, "b", room.NextTurnID())

	room.Participants["b"].Connected = false
	assert.Equal(t, "c", room.NextTurnID())

	room.TurnID = "c"
	assert.Equal(t, "a", room.NextTurnID(), "rotation wraps around")

	room.Participants["a"].Connected = false
	room.Participants["c"].Connected = false
	assert.Equal(t, "", room.NextTurnID(), "no connected participant left")
}

func TestTeamAssignment(t *testing.T) {
	room := NewRoom("TEST", VariantDraw)

	first := &Participant{ID: "a", Connected: true}
	first.Team = room.TeamFor()
	room.Participants["a"] = first
	assert.Equal(t, TeamA, first.Team)

	second := &Participant{ID: "b", Connected: true}
	second.Team = room.TeamFor()
	room.Participants["b"] = second
	assert.Equal(t, TeamB, second.Team)

	assert.True(t, room.HasBothTeams())

	second.Connected = false
	assert.False(t, room.HasBothTeams())
}

func TestRejectionReason(t *testing.T) {
	assert.Equal(t, "not_your_turn", RejectionReason(ErrNotYourTurn))
	assert.Equal(t, "already_delivered", RejectionReason(ErrAlreadyDelivered))
	assert.Equal(t, "round_resolving", RejectionReason(ErrRoundResolving))
	assert.Equal(t, "already_in_room", RejectionReason(ErrAlreadyInRoom))
	assert.Equal(t, "invalid_action", RejectionReason(assert.AnError))
}
