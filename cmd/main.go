package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/sema/internal/adapters/http/api"
	"github.com/okian/sema/internal/adapters/similarity"
	"github.com/okian/sema/internal/adapters/store"
	"github.com/okian/sema/internal/app"
	"github.com/okian/sema/internal/config"
	"github.com/okian/sema/internal/domain/words"
	"github.com/okian/sema/pkg/logger"
	"github.com/okian/sema/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	list, err := words.Load(cfg.WordListPath)
	if err != nil {
		log.Error(ctx, "failed to load word list", logger.String("path", cfg.WordListPath), logger.Error(err))
		return
	}

	var sessions store.Store
	if cfg.DBPath == "" {
		log.Warn(ctx, "no db_path configured; sessions will not survive restarts")
		sessions = store.NewMemoryStore()
	} else {
		sqlStore, err := store.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			log.Error(ctx, "failed to open session store", logger.String("path", cfg.DBPath), logger.Error(err))
			return
		}
		defer sqlStore.Close()
		sessions = sqlStore
	}

	sim := similarity.NewHTTPClient(cfg.SimilarityBaseURL,
		similarity.WithTimeout(time.Duration(cfg.LookupTimeoutMS)*time.Millisecond),
	)

	engine := app.New(sessions, sim, list,
		app.WithLogger(log.Named("engine")),
		app.WithRandomSeed(cfg.RandomSeed),
		app.WithDefaultTopN(cfg.DefaultTopN),
		app.WithRevealTopN(cfg.RevealTopN),
		app.WithMaxTopN(cfg.MaxTopN),
	)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	apiServer := api.NewServer(engine,
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.Int("words", len(list)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
