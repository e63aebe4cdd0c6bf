package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

var ErrNotBotTurn = errors.New("it's not the bot's turn")

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) error
}

type moveChooser interface {
	ChooseMove(board entity.Board, mover entity.Mark) (int, error)
}

type botService struct {
	engine moveChooser
	delay  time.Duration
}

// NewBotService - delay is a fixed pause before every bot move, for pacing only.
func NewBotService(engine moveChooser, delay time.Duration) BotService {
	return &botService{
		engine: engine,
		delay:  delay,
	}
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) error {
	if !game.IsBotTurn() {
		return ErrNotBotTurn
	}

	if err := that.wait(ctx); err != nil {
		return err
	}

	chosenCell, err := that.engine.ChooseMove(game.Board, game.BotMark)
	if err != nil {
		return fmt.Errorf("bot failed to choose cell: %w", err)
	}

	if err = tictactoe.MakeTurn(game, game.BotMark, chosenCell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

func (that *botService) wait(ctx context.Context) error {
	if that.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(that.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("bot turn canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
