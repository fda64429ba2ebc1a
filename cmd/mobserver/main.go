package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/mobpatch/internal/ai"
	"github.com/udisondev/mobpatch/internal/config"
	"github.com/udisondev/mobpatch/internal/db"
	"github.com/udisondev/mobpatch/internal/spawn"
	"github.com/udisondev/mobpatch/internal/tracker"
	"github.com/udisondev/mobpatch/internal/world"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		reportFatal(slog.Default(), err)
		os.Exit(1)
	}
}

// reportFatal logs the error that stops the process.
func reportFatal(logger *slog.Logger, err error) {
	logger.Error("fatal", "error", err)
}

func run(ctx context.Context) error {
	cfgPath := config.ConfigPath()
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Enable AI debug logging if log level is debug
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("mobserver starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"tracker", cfg.Tracker.Addr(),
		"factions", cfg.Factions.Source)

	factions, closeDB, err := loadFactions(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()
	slog.Info("faction table loaded", "entries", factions.Len())

	templates, err := spawn.BuildTemplates(cfg.Templates)
	if err != nil {
		return fmt.Errorf("building templates: %w", err)
	}

	w := world.New(world.SideServer)
	ticks := ai.NewTickManager(cfg.TickInterval)

	trackerSrv, err := tracker.NewServer(cfg.Tracker, w, tracker.NewRegistry())
	if err != nil {
		return fmt.Errorf("creating tracker server: %w", err)
	}

	factory := spawn.NewFactory(w, ticks, templates, factions, trackerSrv.Broadcaster(), trackerSrv)
	if err := factory.SpawnAll(cfg.Spawns); err != nil {
		return err
	}
	respawns := spawn.NewRespawnTaskManager(factory, cfg.RespawnDelay)

	var watcher *config.FactionWatcher
	if cfg.Factions.Source == config.FactionSourceYAML && cfg.Factions.Watch {
		watcher, err = config.NewFactionWatcher(cfg.Factions.Path, factions)
		if err != nil {
			return fmt.Errorf("creating faction watcher: %w", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := ticks.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("tick manager: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return respawns.Start(gctx)
	})

	g.Go(func() error {
		slog.Info("starting tracker server", "address", cfg.Tracker.Addr())
		if err := trackerSrv.Run(gctx); err != nil {
			return fmt.Errorf("tracker server: %w", err)
		}
		return nil
	})

	if watcher != nil {
		g.Go(func() error {
			slog.Info("watching faction table", "path", cfg.Factions.Path)
			return watcher.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("mobserver stopped", "ticks", ticks.Ticks())
	return nil
}

// loadFactions builds the faction table from the configured source.
// The database source is seeded from the yaml table when empty.
func loadFactions(ctx context.Context, cfg config.Server) (*config.FactionTable, func(), error) {
	noop := func() {}

	fileEntries, err := config.LoadFactionEntries(cfg.Factions.Path)
	if err != nil {
		return nil, noop, fmt.Errorf("loading faction table: %w", err)
	}
	if cfg.Factions.Source != config.FactionSourceDatabase {
		return config.NewFactionTable(fileEntries), noop, nil
	}

	database, err := db.New(ctx, cfg.Database)
	if err != nil {
		return nil, noop, fmt.Errorf("connecting to database: %w", err)
	}
	slog.Info("database connected")

	version, err := database.Migrate(ctx)
	if err != nil {
		database.Close()
		return nil, noop, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied", "version", version)

	repo := database.Factions()
	entries, err := repo.LoadAll(ctx)
	if err != nil {
		database.Close()
		return nil, noop, fmt.Errorf("loading factions from database: %w", err)
	}
	if len(entries) == 0 && len(fileEntries) > 0 {
		if err := repo.UpsertAll(ctx, fileEntries); err != nil {
			database.Close()
			return nil, noop, fmt.Errorf("seeding factions: %w", err)
		}
		slog.Info("faction table seeded from file", "entries", len(fileEntries))
		entries = fileEntries
	}

	return config.NewFactionTable(entries), database.Close, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
