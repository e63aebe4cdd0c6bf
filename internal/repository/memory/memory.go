// Package memory keeps players and games in process memory. State is lost on restart.
package memory

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
)

var (
	_ repository.GameRepository   = (*GameRepository)(nil)
	_ repository.PlayerRepository = (*PlayerRepository)(nil)
)

type GameRepository struct {
	games *xsync.MapOf[string, entity.Game]
}

func NewGameRepository() *GameRepository {
	return &GameRepository{games: xsync.NewMapOf[string, entity.Game]()}
}

func (that *GameRepository) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.games.Store(game.ID, cloneGame(game))
	return nil
}

func (that *GameRepository) GetByID(_ context.Context, id string) (*entity.Game, error) {
	game, ok := that.games.Load(id)
	if !ok {
		return nil, repository.ErrGameNotFound
	}

	stored := cloneGame(&game)
	return &stored, nil
}

func (that *GameRepository) DeleteByID(_ context.Context, id string) error {
	if _, ok := that.games.LoadAndDelete(id); !ok {
		return repository.ErrGameNotFound
	}

	return nil
}

// Size - number of stored games.
func (that *GameRepository) Size() int {
	return that.games.Size()
}

type PlayerRepository struct {
	players *xsync.MapOf[string, entity.Player]
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{players: xsync.NewMapOf[string, entity.Player]()}
}

func (that *PlayerRepository) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.players.Store(player.ID, *player)
	return nil
}

func (that *PlayerRepository) GetByID(_ context.Context, id string) (*entity.Player, error) {
	player, ok := that.players.Load(id)
	if !ok {
		return nil, repository.ErrPlayerNotFound
	}

	return &player, nil
}

// cloneGame copies the pointer fields so callers never share state with the map.
func cloneGame(game *entity.Game) entity.Game {
	clone := *game

	if game.WinLine != nil {
		line := *game.WinLine
		clone.WinLine = &line
	}

	if game.Hint != nil {
		hint := *game.Hint
		clone.Hint = &hint
	}

	return clone
}
