package tictactoe

import (
	"math"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// NoMove - SearchResult.Index when there is no legal move.
const NoMove = -1

// WinScore - magnitude of a decided game. With depth scoring it shrinks by one per ply.
const WinScore = 10

// Options - search policy. One engine applies one policy to every node.
type Options struct {
	// Pruning enables alpha-beta cutoffs. It changes the number of visited nodes, never the result.
	Pruning bool
	// DepthScoring scores wins as WinScore-depth and losses as depth-WinScore,
	// so the engine prefers faster wins and slower losses.
	DepthScoring bool
}

// DefaultOptions - pruned search with fastest-win scoring.
func DefaultOptions() Options {
	return Options{Pruning: true, DepthScoring: true}
}

// SearchResult - the chosen cell and its score from the root player's point of view.
type SearchResult struct {
	Index int `json:"index"`
	Score int `json:"score"`
	Nodes int `json:"nodes"`
}

// HasMove reports whether the search found a legal move.
func (that SearchResult) HasMove() bool {
	return that.Index != NoMove
}

// Engine - exhaustive minimax over the 3x3 game tree. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	options Options
}

func NewEngine(options Options) *Engine {
	return &Engine{options: options}
}

func (that *Engine) Options() Options {
	return that.options
}

// BestMove - optimal move for mover on board.
func (that *Engine) BestMove(board entity.Board, mover entity.Mark) SearchResult {
	return that.Search(board, mover, 0, math.MinInt, math.MaxInt)
}

// Hint - the move the engine would play in the human's place.
func (that *Engine) Hint(board entity.Board, human entity.Mark) SearchResult {
	return that.BestMove(board, human)
}

// Search - minimax from board with mover as the root player, starting at depth
// inside the window (alpha, beta). Ties go to the lowest cell index.
func (that *Engine) Search(board entity.Board, mover entity.Mark, depth, alpha, beta int) SearchResult {
	// board is a copy owned by this call, scratch moves never reach the caller
	result := SearchResult{}
	result.Index, result.Score = that.search(&board, mover, mover, depth, alpha, beta, &result.Nodes)

	return result
}

func (that *Engine) search(board *entity.Board, root, mover entity.Mark, depth, alpha, beta int, nodes *int) (int, int) {
	*nodes++

	if outcome := entity.Evaluate(*board); outcome.IsTerminal() {
		return NoMove, that.terminalScore(outcome, root, depth)
	}

	maximizing := mover == root

	bestIndex := NoMove
	bestScore := math.MaxInt
	if maximizing {
		bestScore = math.MinInt
	}

	for i := range board {
		if board[i] != entity.EmptyCell {
			continue
		}

		board[i] = mover
		_, score := that.search(board, root, mover.Opponent(), depth+1, alpha, beta, nodes)
		board[i] = entity.EmptyCell

		if maximizing {
			if score > bestScore {
				bestIndex, bestScore = i, score
			}
			alpha = max(alpha, bestScore)
		} else {
			if score < bestScore {
				bestIndex, bestScore = i, score
			}
			beta = min(beta, bestScore)
		}

		if that.options.Pruning && beta <= alpha {
			break
		}
	}

	// a full board is always terminal, kept for hand-built boards
	if bestIndex == NoMove {
		return NoMove, 0
	}

	return bestIndex, bestScore
}

func (that *Engine) terminalScore(outcome entity.Outcome, root entity.Mark, depth int) int {
	if outcome.Status == entity.Draw {
		return 0
	}

	score := WinScore
	if that.options.DepthScoring {
		score = WinScore - depth
	}

	if outcome.Winner != root {
		return -score
	}

	return score
}

// ChooseMove - BestMove with a fallback: when the search returns no move or an
// occupied cell, a random empty cell is played instead.
func (that *Engine) ChooseMove(board entity.Board, mover entity.Mark) (int, error) {
	result := that.BestMove(board, mover)
	if result.HasMove() && board.IsEmpty(result.Index) {
		return result.Index, nil
	}

	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return NoMove, apperror.ErrNoAvailableMoves
	}

	return availableCells[rand.Intn(len(availableCells))], nil //nolint: gosec // it's ok
}
