// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/airbnbviz/internal/config"
	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/db"
	"github.com/codr1/airbnbviz/internal/ratelimit"
	"github.com/codr1/airbnbviz/internal/scheduler"
)

const startupTimeout = 30 * time.Second

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Features.EnableDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.App.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	zerolog.DefaultContextLogger = &log.Logger
}

// openSource returns the configured listing source and a cleanup func.
func openSource(cfg *config.Config) (dataset.Source, func(), error) {
	switch cfg.Dataset.Source {
	case config.SourceDatabase:
		database, err := db.NewFromConfig(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("open listings database: %w", err)
		}
		return db.NewListingSource(database, cfg.Database.Driver), func() { _ = database.Close() }, nil
	default:
		return dataset.NewCSVSource(cfg.Dataset.CSVPath), func() {}, nil
	}
}

// openPreviewer connects to MongoDB when configured.
func openPreviewer(ctx context.Context, cfg *config.Config) (dataset.RecordPreviewer, func(), error) {
	if !cfg.MongoEnabled() {
		log.Info().Msg("MONGODB_URI not set; raw record preview disabled")
		return dataset.DisabledPreviewer{}, func() {}, nil
	}
	previewer, err := dataset.NewMongoPreviewer(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Str("collection", cfg.Mongo.Collection).Msg("Connected to MongoDB")
	return previewer, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := previewer.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}, nil
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load configuration")
	}

	setupLogger(cfg)

	startupCtx, cancelStartup := context.WithTimeout(log.Logger.WithContext(context.Background()), startupTimeout)
	defer cancelStartup()

	source, closeSource, err := openSource(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open dataset source")
	}
	defer closeSource()

	holder := dataset.NewHolder(source)
	if err := holder.Load(startupCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load dataset")
	}

	previewer, closePreviewer, err := openPreviewer(startupCtx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer closePreviewer()

	if err := scheduler.Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	svc, err := scheduler.ServiceInstance()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get scheduler")
	}
	if err := scheduler.RegisterDatasetRefresh(svc, holder, cfg.Dataset.RefreshCron); err != nil {
		log.Fatal().Err(err).Msg("Failed to register dataset refresh job")
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	limiter := ratelimit.New(&ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		TrustProxy:        cfg.RateLimit.TrustProxy,
	})
	defer limiter.Close()

	server := newServer(cfg, holder, previewer, limiter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := scheduler.Stop(); err != nil {
			log.Warn().Err(err).Msg("Scheduler shutdown error")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
