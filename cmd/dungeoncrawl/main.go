// Package main is the entry point for DungeonCrawl.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeoncrawl/internal/config"
	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/ui"
	"github.com/samdwyer/dungeoncrawl/internal/world"
)

func main() {
	seed := flag.Int64("seed", 0, "dungeon seed (0 uses DUNGEONCRAWL_SEED or the clock)")
	dump := flag.Bool("dump", false, "print the generated map and exit")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	if err := run(cfg, *dump); err != nil {
		log.Fatal(err)
	}
}

func run(cfg config.Config, dump bool) error {
	ctx := context.Background()

	gameCfg, err := cfg.Game()
	if err != nil {
		return err
	}

	if dump {
		return dumpMap(ctx, gameCfg, os.Stdout)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger := telemetry.NewLogger(cfg.Env, logFile)

	if cfg.Telemetry {
		setupOTelEnv(cfg)
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			// Continue without telemetry - game still works
			logger.Warn().Err(err).Msg("telemetry setup failed")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("telemetry shutdown failed")
				}
			}()
		}
	}

	g, err := game.New(gameCfg, logger)
	if err != nil {
		return fmt.Errorf("initializing game: %w", err)
	}
	return g.Run(ctx)
}

func dumpMap(ctx context.Context, cfg game.Config, w io.Writer) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	d, err := world.Generate(ctx, cfg.Dungeon, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "seed %d\n\n", seed)
	if err := d.Shortfall(); err != nil {
		fmt.Fprintf(w, "warning: %v\n\n", err)
	}
	return ui.DumpMap(w, d)
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv(cfg config.Config) {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may have an unexpanded variable reference that doesn't
	// work, so the headers are constructed here.
	if cfg.HoneycombAPIKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", cfg.HoneycombAPIKey, cfg.HoneycombDataset))
	}
}
