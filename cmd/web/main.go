package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/mapuipa/internal/db"
	"github.com/jusunglee/mapuipa/internal/db/postgres"
	"github.com/jusunglee/mapuipa/internal/db/sqlite"
	"github.com/jusunglee/mapuipa/internal/logger"
	"github.com/jusunglee/mapuipa/internal/web"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("mapuipa-web")

	var (
		port           = fs.Int64Long("port", 3000, "HTTP server port")
		databaseURL    = fs.StringLong("database-url", "sqlite://./mapuipa.db", "sqlite:// path or postgres:// URL")
		apiKey         = fs.StringLong("api-key", "", "key required to delete transcriptions")
		allowedOrigins = fs.StringLong("allowed-origins", "", "Comma-separated list of allowed CORS origins")
		rateLimit      = fs.IntLong("rate-limit", 60, "write requests allowed per client per window")
		rateWindow     = fs.DurationLong("rate-window", time.Minute, "rate limit window")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, *databaseURL)
	if err != nil {
		return err
	}
	defer repo.Close()
	log.InfoContext(ctx, "connected to database", "scheme", scheme(*databaseURL))

	var origins []string
	if *allowedOrigins != "" {
		for _, o := range strings.Split(*allowedOrigins, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	router := web.NewRouter(repo, log, web.Options{
		APIKey:         *apiKey,
		AllowedOrigins: origins,
		RateLimit:      *rateLimit,
		RateWindow:     *rateWindow,
	})
	if *apiKey == "" {
		log.WarnContext(ctx, "api-key not set, DELETE routes are disabled")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.InfoContext(ctx, "starting web server", "port", *port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		router.Limiter().RunCleanup(ctx, 5*time.Minute)
		return nil
	})

	if pg, ok := repo.(*postgres.Repository); ok {
		g.Go(func() error {
			pg.RecordPoolStats(ctx, 15*time.Second)
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func scheme(databaseURL string) string {
	if i := strings.Index(databaseURL, "://"); i > 0 {
		return databaseURL[:i]
	}
	return "sqlite"
}

// openRepository picks the backend from the URL scheme. Bare paths are SQLite.
func openRepository(ctx context.Context, databaseURL string) (db.Repository, error) {
	switch scheme(databaseURL) {
	case "postgres", "postgresql":
		repo, err := postgres.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating PostgreSQL connection: %w", err)
		}
		return repo, nil
	case "sqlite":
		repo, err := sqlite.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening SQLite database: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported database URL scheme %q", scheme(databaseURL))
	}
}
