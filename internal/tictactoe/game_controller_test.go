package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_MakeTurn(t *testing.T) {
	t.Run("MakeTurn", func(t *testing.T) {
		// Given: create a new game with a pending hint
		game := entity.NewGame("123", entity.PlayerX)
		hint := 4
		game.Hint = &hint

		// When: player X makes a turn
		err := MakeTurn(game, entity.PlayerX, 0)
		require.NoError(t, err)

		// Then: the game state should reflect the turn and queue change
		expectedGame := &entity.Game{
			ID:        "123",
			Board:     entity.Board{entity.PlayerX},
			Turn:      entity.PlayerO,
			Status:    entity.StatusOngoing,
			HumanMark: entity.PlayerX,
			BotMark:   entity.PlayerO,
		}

		require.Equal(t, expectedGame, game)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: new game with player X's queue
		game := entity.NewGame("123", entity.PlayerX)

		// When: player X moves to cell 0
		err := MakeTurn(game, entity.PlayerX, 0)
		require.NoError(t, err)

		snapshot := *game

		// When: player O tries to make a move to the same square
		err = MakeTurn(game, entity.PlayerO, 0)

		// Then: an error ErrCellOccupied must be returned
		require.ErrorIs(t, err, apperror.ErrCellOccupied)

		// Then: the game state remains unchanged
		require.Equal(t, snapshot, *game)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123", entity.PlayerX)

		// When: player O tries to make a move when it is player X's turn
		err := MakeTurn(game, entity.PlayerO, 1)

		// Then: an error ErrNotYourTurn must be returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.Board{}, game.Board)
	})

	t.Run("Invalid Cell", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123", entity.PlayerX)

		// When: an invalid cell index is passed (greater than the range)
		err := MakeTurn(game, entity.PlayerX, 20)

		// Then: an error ErrInvalidCell must be returned
		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Invalid Negative Cell", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123", entity.PlayerX)

		// When: negative cell index is transmitted
		err := MakeTurn(game, entity.PlayerX, -1)

		// Then: an error ErrInvalidCell must be returned
		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Winning move finishes the game", func(t *testing.T) {
		// Given: X is one move away from the top row
		game := entity.NewGame("123", entity.PlayerX)
		game.Board = entity.Board{
			entity.PlayerX, entity.PlayerX, entity.EmptyCell,
			entity.PlayerO, entity.PlayerO, entity.EmptyCell,
		}

		// When: X completes the row
		err := MakeTurn(game, entity.PlayerX, 2)
		require.NoError(t, err)

		// Then: the game is finished and nobody has the turn
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerX, game.Winner)
		assert.Equal(t, &entity.Line{0, 1, 2}, game.WinLine)
		assert.Equal(t, entity.EmptyCell, game.Turn)
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		// Given: a game where player X has already won
		game := &entity.Game{
			Board: entity.Board{
				entity.PlayerX, entity.PlayerX, entity.PlayerX,
				"", entity.PlayerO, "",
				"", entity.PlayerO, "",
			},
			Status: entity.StatusFinished,
			Turn:   entity.PlayerO,
		}

		// When: player O tries to make a move after the game is over
		err := MakeTurn(game, entity.PlayerO, 3)

		// Then: an error ErrGameFinished should be returned.
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Move After Tie", func(t *testing.T) {
		// Given: a game that ended in a draw
		game := &entity.Game{
			Board: entity.Board{
				entity.PlayerX, entity.PlayerO, entity.PlayerX,
				entity.PlayerX, entity.PlayerO, entity.PlayerO,
				entity.PlayerO, entity.PlayerX, entity.PlayerX,
			},
			Status: entity.StatusFinished,
			Winner: entity.PlayerTie,
		}

		// When: player X tries to make a move after a draw
		err := MakeTurn(game, entity.PlayerX, 3)

		// Then: an error ErrGameFinished should be returned.
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}
