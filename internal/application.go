package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"libdb.so/hserve"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository/memory"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ai/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-ai/transport/rest"
	"github.com/rocketscienceinc/tictactoe-ai/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

type repositories struct {
	players repository.PlayerRepository
	games   repository.GameRepository
	close   func() error
}

// RunApp - runs the application until ctx is canceled or a server fails.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	repos, err := newRepositories(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err := repos.close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	engine := tictactoe.NewEngine(engineOptions(conf.Engine))
	log.Info("engine ready", "pruning", engine.Options().Pruning, "depthScoring", engine.Options().DepthScoring)

	bot := service.NewBotService(engine, conf.Engine.BotDelay)
	gameManager := usecase.NewGameManager(logger.With("component", "game"), repos.players, repos.games, bot, engine)

	errg, ctx := errgroup.WithContext(ctx)

	errg.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)

		handler := rest.NewRouter(logger.With("component", "rest"), engine)
		if err := hserve.ListenAndServe(ctx, ":"+conf.HTTPPort, handler); err != nil && ctx.Err() == nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	})

	errg.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)

		wsServer := websocket.New(logger.With("component", "websocket"), gameManager)
		if err := hserve.ListenAndServe(ctx, ":"+conf.SocketPort, wsServer.Handler()); err != nil && ctx.Err() == nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}

		return nil
	})

	if err = errg.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// engineOptions - the default search policy with the configured opt-outs applied.
func engineOptions(conf config.Engine) tictactoe.Options {
	options := tictactoe.DefaultOptions()

	if conf.DisablePruning {
		options.Pruning = false
	}

	if conf.PlainScoring {
		options.DepthScoring = false
	}

	return options
}

func newRepositories(ctx context.Context, conf *config.Config) (*repositories, error) {
	if conf.Storage != config.StorageRedis {
		return &repositories{
			players: memory.NewPlayerRepository(),
			games:   memory.NewGameRepository(),
			close:   func() error { return nil },
		}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return &repositories{
		players: repository.NewPlayerRepository(redisStorage, conf.Redis.TTL),
		games:   repository.NewGameRepository(redisStorage, conf.Redis.TTL),
		close:   redisStorage.Close,
	}, nil
}
