package entity

// OutcomeStatus - classification of a board.
type OutcomeStatus string

const (
	InProgress OutcomeStatus = "in_progress"
	Win        OutcomeStatus = "win"
	Draw       OutcomeStatus = "draw"
)

// Outcome - result of evaluating a board. Winner and Line are set only for Win.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Winner Mark          `json:"winner,omitempty"`
	Line   *Line         `json:"line,omitempty"`
}

// IsTerminal reports whether the game is over.
func (that Outcome) IsTerminal() bool {
	return that.Status != InProgress
}

// Evaluate - classifies the board. It accepts any board, including ones that
// cannot arise in legal play, and reports the first completed line in WinLines order.
func Evaluate(board Board) Outcome {
	for _, line := range WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != EmptyCell && a == b && b == c {
			winLine := line
			return Outcome{Status: Win, Winner: a, Line: &winLine}
		}
	}

	// the game will continue until all the squares are full
	for _, cell := range board {
		if cell == EmptyCell {
			return Outcome{Status: InProgress}
		}
	}

	return Outcome{Status: Draw}
}
