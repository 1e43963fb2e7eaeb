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

	"github.com/udisondev/mapcore/internal/config"
	"github.com/udisondev/mapcore/internal/data"
	"github.com/udisondev/mapcore/internal/db"
	"github.com/udisondev/mapcore/internal/model"
	"github.com/udisondev/mapcore/internal/status"
	"github.com/udisondev/mapcore/internal/timer"
	"github.com/udisondev/mapcore/internal/world"
)

const MapConfigPath = "config/mapserver.yaml"

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
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadMapServer(MapConfigPath)
	if err != nil {
		return fmt.Errorf("loading map config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))
	slog.Info("map server starting", "log_level", cfg.LogLevel, "sc_store", cfg.SCStore)

	jobs, err := data.LoadJobDB(cfg.JobDBPath)
	if err != nil {
		return fmt.Errorf("loading job db: %w", err)
	}
	scConf, err := data.LoadSCConfig(cfg.SCConfigPath)
	if err != nil {
		return fmt.Errorf("loading sc config: %w", err)
	}
	slog.Info("tables loaded", "jobs", len(jobs), "sc_config", len(scConf))

	persister, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	w := world.Instance()
	sched := timer.NewScheduler(0)
	loop := timer.NewLoop(sched, cfg.TickInterval)

	engine := status.New(status.Deps{
		Timers:    sched,
		World:     w,
		Persister: persister,
		Notifier:  logNotifier{},
		Jobs:      jobs,
		SCConfig:  scConf,
		Battle:    cfg.Battle,
	})
	w.OnRemove(engine.OnEntityRemoved)
	engine.StartNaturalHeal()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("timer loop: %w", err)
	}

	// the loop is stopped: nothing else touches entities now
	engine.StopNaturalHeal()
	saveAll(engine, w)

	slog.Info("map server stopped")
	return nil
}

// openStore selects the status persistence backend. The returned closer is never nil.
func openStore(ctx context.Context, cfg config.MapServer) (status.Persister, func(), error) {
	switch cfg.SCStore {
	case config.StorePostgres:
		dsn := cfg.Database.DSN()
		if err := db.RunMigrations(ctx, dsn); err != nil {
			return nil, nil, fmt.Errorf("migrating database: %w", err)
		}
		database, err := db.New(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		slog.Info("status store ready", "backend", cfg.SCStore, "host", cfg.Database.Host)
		return db.NewSCDataRepository(database.Pool()), database.Close, nil

	case config.StoreRedis:
		rdb, err := db.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("opening redis: %w", err)
		}
		slog.Info("status store ready", "backend", cfg.SCStore, "addr", cfg.Redis.Addr)
		return db.NewRedisSCDataRepository(rdb), func() { _ = rdb.Close() }, nil

	default:
		slog.Warn("status persistence disabled")
		return nil, func() {}, nil
	}
}

// saveAll stores the effects of every player still in the world.
func saveAll(engine *status.Engine, w *world.World) {
	ctx := context.Background()
	saved := 0
	w.Range(func(ent *model.Entity) bool {
		if !ent.IsPlayer() {
			return true
		}
		if err := engine.SaveSC(ctx, ent); err != nil {
			slog.Error("saving status on shutdown", "char_id", ent.CharID(), "error", err)
			return true
		}
		saved++
		return true
	})
	slog.Info("status saved on shutdown", "players", saved)
}
