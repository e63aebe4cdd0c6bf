package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a new game is created for a human playing O
	game := NewGame("123", PlayerO)

	// Then: X moves first and the bot takes the other mark
	expectedGame := &Game{
		ID:        "123",
		Turn:      PlayerX,
		Status:    StatusOngoing,
		HumanMark: PlayerO,
		BotMark:   PlayerX,
	}

	require.Equal(t, expectedGame, game)
	assert.True(t, game.IsBotTurn())
	assert.False(t, game.IsHumanTurn())
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// When: checking if the game is finished
		isFinished := game.IsFinished()

		// Then: it should return true
		assert.True(t, isFinished)
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		// Given: a game with StatusOngoing
		game := &Game{Status: StatusOngoing}

		// When: checking if the game is ongoing
		isOngoing := game.IsOngoing()

		// Then: it should return true
		assert.True(t, isOngoing)
	})

	t.Run("Nobody has the turn in a finished game", func(t *testing.T) {
		// Given: a finished game where the turn field is stale
		game := &Game{Status: StatusFinished, Turn: PlayerX, HumanMark: PlayerX, BotMark: PlayerO}

		// Then: neither side may move
		assert.False(t, game.IsHumanTurn())
		assert.False(t, game.IsBotTurn())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		// Given: a game with StatusOngoing
		game := &Game{Status: StatusOngoing}

		// When: checking if the game is active
		err := game.ConfirmOngoingState()

		// Then: it should return nil error
		assert.NoError(t, err)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// When: checking if the game is active
		err := game.ConfirmOngoingState()

		// Then: it should return ErrGameFinished
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		// Given: a game with unknown status
		game := &Game{Status: "unknown"}

		// When: checking if the game is active
		err := game.ConfirmOngoingState()

		// Then: it should return an error
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownGameStatus)
	})
}

func TestGame_UpdateGameState(t *testing.T) {
	t.Run("Updates game state when Player X wins", func(t *testing.T) {
		// Given: a game where Player X has a winning combination
		game := &Game{
			Board: Board{
				PlayerX, PlayerX, PlayerX,
				EmptyCell, PlayerO, EmptyCell,
				PlayerO, EmptyCell, EmptyCell,
			},
			Status: StatusOngoing,
			Turn:   PlayerO,
		}

		// When: updating the game state
		outcome := game.UpdateGameState()

		// Then: the game should be finished with Player X as the winner
		assert.Equal(t, Win, outcome.Status)
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, PlayerX, game.Winner)
		assert.Equal(t, &Line{0, 1, 2}, game.WinLine)
		assert.Equal(t, EmptyCell, game.Turn)
	})

	t.Run("Updates game state when the game is a tie", func(t *testing.T) {
		// Given: a game that ended in a tie
		game := &Game{
			Board: Board{
				PlayerX, PlayerO, PlayerX,
				PlayerX, PlayerO, PlayerO,
				PlayerO, PlayerX, PlayerX,
			},
			Status: StatusOngoing,
			Turn:   PlayerO,
		}

		// When: updating the game state
		game.UpdateGameState()

		// Then: the game should be finished with a tie
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, PlayerTie, game.Winner)
		assert.Nil(t, game.WinLine)
		assert.Equal(t, EmptyCell, game.Turn)
	})

	t.Run("Game remains ongoing when there is no winner or tie", func(t *testing.T) {
		// Given: a game that is still ongoing
		game := &Game{
			Board: Board{
				PlayerX, PlayerO, EmptyCell,
				EmptyCell, PlayerX, EmptyCell,
				EmptyCell, EmptyCell, PlayerO,
			},
			Status: StatusOngoing,
			Turn:   PlayerX,
		}

		// When: updating the game state
		game.UpdateGameState()

		// Then: the game should remain ongoing
		assert.Equal(t, StatusOngoing, game.Status)
		assert.Equal(t, EmptyCell, game.Winner)
		assert.Equal(t, PlayerX, game.Turn)
	})
}

func TestScore_Record(t *testing.T) {
	human, bot := PlayerX, PlayerO

	var score Score

	// Given: one game of each result and one that is still running
	games := []*Game{
		{Status: StatusFinished, Winner: human, HumanMark: human, BotMark: bot},
		{Status: StatusFinished, Winner: bot, HumanMark: human, BotMark: bot},
		{Status: StatusFinished, Winner: PlayerTie, HumanMark: human, BotMark: bot},
		{Status: StatusFinished, Winner: PlayerTie, HumanMark: human, BotMark: bot},
		{Status: StatusOngoing, HumanMark: human, BotMark: bot},
	}

	// When: recording them
	for _, game := range games {
		score.Record(game)
	}

	// Then: only finished games are counted
	assert.Equal(t, Score{Wins: 1, Losses: 1, Draws: 2}, score)
}

func TestGetRandomMark(t *testing.T) {
	seen := map[Mark]int{}
	for range 200 {
		mark := GetRandomMark()

		require.True(t, mark.IsPlayer())
		seen[mark]++
	}

	assert.Len(t, seen, 2)
}
