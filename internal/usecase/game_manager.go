package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type hinter interface {
	Hint(board entity.Board, human entity.Mark) tictactoe.SearchResult
}

// GameManager - a human player's session against the bot.
type GameManager struct {
	logger     *slog.Logger
	playerRepo playerRepo
	gameRepo   gameRepo

	bot    service.BotService
	hinter hinter
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, bot service.BotService, hinter hinter) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,

		bot:    bot,
		hinter: hinter,
	}
}

// GetOrCreatePlayer - an empty or unknown id registers a new session.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		that.logger.With("method", "GetOrCreatePlayer").Info("session expired, registering a new one", "playerID", id)

		return that.GetOrCreatePlayer(ctx, "")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// NewGame - starts a game for the player, dropping the previous one. An empty mark picks one at random.
// When the bot plays X it makes the first move before the game is returned.
func (that *GameManager) NewGame(ctx context.Context, playerID string, mark entity.Mark) (*entity.Game, error) {
	log := that.logger.With("method", "NewGame", "playerID", playerID)

	if mark == entity.EmptyCell {
		mark = entity.GetRandomMark()
	}

	if !mark.IsPlayer() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID != "" {
		that.deleteGame(ctx, player.GameID)
	}

	game := entity.NewGame(pkg.GenerateGameID(), mark)

	if game.IsBotTurn() {
		if err = that.bot.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to make bot opening turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	player.GameID = game.ID
	player.Mark = mark
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	log.Info("game created", "gameID", game.ID, "humanMark", mark)

	return game, nil
}

// MakeTurn - plays the human move and the bot reply. When the game ends the final game is
// returned together with apperror.ErrGameFinished and the player's score is updated.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	player, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = tictactoe.MakeTurn(game, player.Mark, cell); err != nil {
		if errors.Is(err, apperror.ErrGameFinished) {
			return game, err
		}

		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.bot.MakeTurn(ctx, game); err != nil {
			return nil, fmt.Errorf("failed make bot turn: %w", err)
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if game.IsFinished() {
		if err = that.finishGame(ctx, player, game); err != nil {
			return nil, err
		}

		return game, apperror.ErrGameFinished
	}

	return game, nil
}

// Hint - records on the game the move the engine would play for the human.
func (that *GameManager) Hint(ctx context.Context, playerID string) (*entity.Game, error) {
	_, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if !game.IsHumanTurn() {
		return game, apperror.ErrNotYourTurn
	}

	result := that.hinter.Hint(game.Board, game.HumanMark)
	if !result.HasMove() {
		return game, apperror.ErrNoAvailableMoves
	}

	game.Hint = &result.Index
	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// LeaveGame - drops the player's current game.
func (that *GameManager) LeaveGame(ctx context.Context, playerID string) (*entity.Player, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return player, apperror.ErrNoActiveGames
	}

	that.deleteGame(ctx, player.GameID)

	player.GameID = ""
	player.Mark = entity.EmptyCell
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	return player, nil
}

// GetGame - the player's current game, finished or not.
func (that *GameManager) GetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	_, game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) activeGame(ctx context.Context, playerID string) (*entity.Player, *entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	if player.GameID == "" {
		return nil, nil, apperror.ErrNoActiveGames
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		// the game expired, the player is detached so the next call starts clean
		player.GameID = ""
		player.Mark = entity.EmptyCell
		if err = that.updatePlayer(ctx, player); err != nil {
			return nil, nil, err
		}

		return nil, nil, apperror.ErrNoActiveGames
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}

	return player, game, nil
}

func (that *GameManager) finishGame(ctx context.Context, player *entity.Player, game *entity.Game) error {
	log := that.logger.With("method", "finishGame", "gameID", game.ID)

	player.Score.Record(game)
	if err := that.updatePlayer(ctx, player); err != nil {
		return err
	}

	log.Info("game finished", "winner", game.Winner, "score", player.Score)

	return nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, id string) {
	log := that.logger.With("method", "deleteGame", "gameID", id)

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		log.Error("failed to delete game", "error", err)
		return
	}

	log.Info("game deleted")
}
