package internal

const BoardSize = 3

const (
	MarkX = "X"
	MarkO = "O"
)

// Board is the 3x3 grid for the board variant. Empty cells hold "".
type Board struct {
	Cells [BoardSize][BoardSize]string `json:"cells"`
	Moves int                          `json:"moves"`
}

func NewBoard() *Board {
	return &Board{}
}

// Apply places mark at (row, col), rejecting out-of-range coordinates and
// occupied cells. Validation happens before any mutation.
func (b *Board) Apply(row, col int, mark string) error {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return ErrOutOfBounds
	}
	if b.Cells[row][col] != "" {
		return ErrCellOccupied
	}
	b.Cells[row][col] = mark
	b.Moves++
	return nil
}

// Winner returns the winning mark, if any.
func (b *Board) Winner() (string, bool) {
	for i := 0; i < BoardSize; i++ {
		if b.Cells[i][0] != "" && b.Cells[i][0] == b.Cells[i][1] && b.Cells[i][1] == b.Cells[i][2] {
			return b.Cells[i][0], true
		}
		if b.Cells[0][i] != "" && b.Cells[0][i] == b.Cells[1][i] && b.Cells[1][i] == b.Cells[2][i] {
			return b.Cells[0][i], true
		}
	}
	if b.Cells[1][1] != "" {
		if b.Cells[0][0] == b.Cells[1][1] && b.Cells[1][1] == b.Cells[2][2] {
			return b.Cells[1][1], true
		}
		if b.Cells[0][2] == b.Cells[1][1] && b.Cells[1][1] == b.Cells[2][0] {
			return b.Cells[1][1], true
		}
	}
	return "", false
}

func (b *Board) Full() bool {
	return b.Moves >= BoardSize*BoardSize
}

func (b *Board) Reset() {
	*b = Board{}
}
