package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// BoardSize - number of cells on a 3x3 board.
const BoardSize = 9

// Mark - content of a single cell.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// IsPlayer reports whether the mark is X or O.
func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// ParseMark - parses X or O, case-insensitive.
func ParseMark(value string) (Mark, error) {
	mark := Mark(strings.ToUpper(strings.TrimSpace(value)))
	if !mark.IsPlayer() {
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, value)
	}

	return mark, nil
}

// Board - 9 cells in row-major order: index i is row i/3, column i%3.
type Board [BoardSize]Mark

// Line - indices of three cells that win when uniformly occupied.
type Line [3]int

// WinLines - rows, then columns, then diagonals. Evaluate reports the first match in this order.
var WinLines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// ParseBoard - validates a board snapshot coming from outside the core.
// Cells may be "X", "O" or empty ("", " ", "-", "_").
func ParseBoard(cells []string) (Board, error) {
	var board Board

	if len(cells) != BoardSize {
		return board, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidBoard, BoardSize, len(cells))
	}

	for i, cell := range cells {
		switch value := strings.ToUpper(strings.TrimSpace(cell)); value {
		case "", "-", "_":
			board[i] = EmptyCell
		case string(PlayerX), string(PlayerO):
			board[i] = Mark(value)
		default:
			return board, fmt.Errorf("%w: cell %d has value %q", apperror.ErrInvalidBoard, i, cell)
		}
	}

	return board, nil
}

// EmptyCells returns the indices of empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// NextMover - the side to move, derived from the mark counts since X always moves first.
// Counts no legal game can produce are rejected with ErrInvalidBoard.
func (that Board) NextMover() (Mark, error) {
	var xCount, oCount int
	for _, cell := range that {
		switch cell {
		case PlayerX:
			xCount++
		case PlayerO:
			oCount++
		}
	}

	switch xCount - oCount {
	case 0:
		return PlayerX, nil
	case 1:
		return PlayerO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidBoard, xCount, oCount)
	}
}

// IsEmpty reports whether the cell at index is free. Out-of-range indices are never empty.
func (that Board) IsEmpty(index int) bool {
	return index >= 0 && index < BoardSize && that[index] == EmptyCell
}

// Strings converts the board to its wire form.
func (that Board) Strings() []string {
	cells := make([]string, BoardSize)
	for i, cell := range that {
		cells[i] = string(cell)
	}

	return cells
}

func (that Board) String() string {
	var sb strings.Builder
	for i, cell := range that {
		if i > 0 && i%3 == 0 {
			sb.WriteByte('/')
		}
		if cell == EmptyCell {
			sb.WriteByte('_')
			continue
		}
		sb.WriteString(string(cell))
	}

	return sb.String()
}
