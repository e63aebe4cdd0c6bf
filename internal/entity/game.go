package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	// PlayerTie - value of Game.Winner after a draw.
	PlayerTie Mark = "-"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game - a session between a human and the bot.
type Game struct {
	ID        string `json:"id"`
	Board     Board  `json:"board"`
	Turn      Mark   `json:"player_turn"`
	Status    string `json:"status"`
	Winner    Mark   `json:"winner"`
	WinLine   *Line  `json:"win_line,omitempty"`
	HumanMark Mark   `json:"human_mark"`
	BotMark   Mark   `json:"bot_mark"`
	Hint      *int   `json:"hint,omitempty"`
}

// NewGame - creates an ongoing game; X always moves first.
func NewGame(id string, humanMark Mark) *Game {
	return &Game{
		ID:        id,
		Turn:      PlayerX,
		Status:    StatusOngoing,
		HumanMark: humanMark,
		BotMark:   humanMark.Opponent(),
	}
}

// UpdateGameState - refreshes status, winner and turn from the board.
func (that *Game) UpdateGameState() Outcome {
	outcome := Evaluate(that.Board)

	switch outcome.Status {
	case Win:
		that.Winner = outcome.Winner
		that.WinLine = outcome.Line
		that.Status = StatusFinished
		that.Turn = EmptyCell
	case Draw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = EmptyCell
	case InProgress:
		that.Status = StatusOngoing
	}

	return outcome
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsHumanTurn() bool {
	return that.IsOngoing() && that.Turn == that.HumanMark
}

func (that *Game) IsBotTurn() bool {
	return that.IsOngoing() && that.Turn == that.BotMark
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// GetRandomMark - X or O with equal chance.
func GetRandomMark() Mark {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX
	}
	return PlayerO
}
