package application

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository/memory"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

func TestRunApp_StopsOnCancel(t *testing.T) {
	// Given: an application on random ports with memory storage
	conf := &config.Config{
		HTTPPort:   "0",
		SocketPort: "0",
		Storage:    config.StorageMemory,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunApp(ctx, logger, conf)
	}()

	// When: the context is canceled
	time.Sleep(100 * time.Millisecond)
	cancel()

	// Then: the application shuts down cleanly
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("application did not stop")
	}
}

func TestEngineOptions(t *testing.T) {
	t.Run("Missing engine section keeps the default policy", func(t *testing.T) {
		// Given: a config file without an engine section
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: info\n"), 0o600))

		conf, err := config.Load(path)
		require.NoError(t, err)

		// When: the engine options are built
		options := engineOptions(conf.Engine)

		// Then: pruning and depth scoring stay on
		assert.Equal(t, tictactoe.DefaultOptions(), options)
		assert.True(t, options.Pruning)
		assert.True(t, options.DepthScoring)
	})

	t.Run("Opt-outs", func(t *testing.T) {
		options := engineOptions(config.Engine{DisablePruning: true, PlainScoring: true})

		assert.Equal(t, tictactoe.Options{Pruning: false, DepthScoring: false}, options)
	})

	t.Run("Plain scoring only", func(t *testing.T) {
		options := engineOptions(config.Engine{PlainScoring: true})

		assert.Equal(t, tictactoe.Options{Pruning: true, DepthScoring: false}, options)
	})
}

func TestNewRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory storage", func(t *testing.T) {
		repos, err := newRepositories(ctx, &config.Config{Storage: config.StorageMemory})

		require.NoError(t, err)
		assert.IsType(t, &memory.PlayerRepository{}, repos.players)
		assert.IsType(t, &memory.GameRepository{}, repos.games)
		assert.NoError(t, repos.close())
	})

	t.Run("Redis storage without address", func(t *testing.T) {
		_, err := newRepositories(ctx, &config.Config{Storage: config.StorageRedis})

		require.ErrorIs(t, err, ErrAddrNotFound)
	})
}
