// cmd/dbtools/migrate/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/airbnbviz/internal/config"
	"github.com/codr1/airbnbviz/internal/dataset"
	"github.com/codr1/airbnbviz/internal/db"
)

const importTimeout = 10 * time.Minute

func usage() {
	fmt.Fprintf(os.Stderr, "usage: migrate [-config config.yaml] up|down|version|import -csv <path>\n")
	flag.PrintDefaults()
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Database.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid database configuration")
	}

	command, args := flag.Arg(0), flag.Args()[1:]
	if err := run(cfg.Database, command, args); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("Migration command failed")
	}
}

func run(cfg config.DatabaseConfig, command string, args []string) error {
	database, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	m, err := database.Migrator()
	if err != nil {
		return err
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		log.Info().Msg("Migrations applied")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		log.Info().Msg("Migrations rolled back")
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("get version failed: %w", err)
		}
		fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
	case "import":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		return importCSV(database, args)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
	return nil
}

// importCSV replaces the listings table with the rows of a cleaned CSV file.
func importCSV(database *db.DB, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	csvPath := fs.String("csv", "", "path to the cleaned listings CSV")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *csvPath == "" {
		return errors.New("import requires -csv")
	}

	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()

	listings, err := dataset.NewCSVSource(*csvPath).ReadAll(ctx)
	if err != nil {
		return err
	}
	if err := database.ReplaceListings(ctx, listings); err != nil {
		return err
	}

	count, err := database.CountListings(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("csv", *csvPath).Int("rows", count).Msg("Listings imported")
	return nil
}
