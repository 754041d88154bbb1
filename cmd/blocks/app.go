package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// app holds what every command builds from the global flags.
type app struct {
	cfg     config.BlocksConfig
	preset  config.DifficultyPreset
	games   *registry.Registry
	store   *storage.Store
	logger  *log.Logger
	logFile *os.File
}

// newApp loads configuration and registers the games. Storage and the
// log file are opened on demand.
func newApp() (*app, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return nil, err
	}
	config.ApplyBlocksPreset(&cfg, preset)
	if flagNoGhost {
		cfg.Board.Ghost = false
	}

	games := registry.New()
	blocks.Register(games)

	return &app{
		cfg:    cfg,
		preset: preset,
		games:  games,
		logger: registry.DefaultEnv().Logger,
	}, nil
}

// openLog sends log output to ~/.blocks/blocks.log so the alt screen
// stays clean. Failure leaves the discarding logger in place.
func (a *app) openLog() {
	dir, err := config.DataDir()
	if err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "blocks.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	a.logFile = f
	a.logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "blocks",
		Level:           log.DebugLevel,
	})
}

// openStore opens the scores database. Games still run without one.
func (a *app) openStore() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		a.logger.Warn("scores disabled", "err", err)
		return
	}
	a.store = store
}

// env returns the collaborators for a local player's games.
func (a *app) env() registry.Env {
	env := registry.Env{
		Config: a.cfg,
		Logger: a.logger,
	}
	if a.store != nil {
		player := localPlayer()
		env.Scores = func(gameID string) registry.ScoreSink {
			return a.store.Sink(gameID, player)
		}
	}
	return env
}

// runtimeConfig sizes the game to the current terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func localPlayer() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
