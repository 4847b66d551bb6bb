package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glintlab/glint/internal/api"
	"github.com/glintlab/glint/internal/app/engagement"
	"github.com/glintlab/glint/internal/app/ledger"
	"github.com/glintlab/glint/internal/app/performance"
	_ "github.com/glintlab/glint/internal/infra/metrics" // Register Prometheus metrics
	"github.com/glintlab/glint/internal/infra/sqlite"
)

// Daemon is the core Glint runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server
	cancel context.CancelFunc

	Gems         *ledger.Service
	Achievements *engagement.AchievementService
	Rewards      *engagement.RewardService
	Streaks      *engagement.StreakService
	Tracker      *engagement.Tracker
	Context      *engagement.ContextBuilder
	Performance  *performance.Service
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dir := cfg.Storage.Dir
	if dir == "" {
		dir = glintHome()
	}
	db, err := sqlite.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &Daemon{Config: cfg, DB: db}

	d.Gems = ledger.NewService(db)
	d.Achievements = engagement.NewAchievementService(db, d.Gems)
	d.Rewards = engagement.NewRewardService(db, d.Gems)
	d.Streaks = engagement.NewStreakService(db, cfg.Engine.MinChecksPerDay)
	d.Context = engagement.NewContextBuilder(db, cfg.Engine.MinChecksPerDay)
	d.Tracker = engagement.NewTracker(db, d.Gems, d.Achievements, d.Rewards, d.Context)
	d.Performance = performance.NewService(db)

	if cfg.Engine.SeedCatalogs {
		if err := d.Achievements.SeedDefaults(); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed achievements: %w", err)
		}
		if err := d.Rewards.SeedDefaults(); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed rewards: %w", err)
		}
	}

	srv := api.NewServer(db, d.Gems, d.Achievements, d.Rewards, d.Streaks, d.Tracker, d.Context, d.Performance)
	if cfg.API.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Glint serving on http://%s\n", addr)
	if d.Config.API.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	if err != nil {
		log.Printf("[daemon] server error: %v", err)
	}
	return err
}

// Stop triggers a graceful shutdown.
func (d *Daemon) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
}

// Close releases resources without serving.
func (d *Daemon) Close() error {
	return d.DB.Close()
}
