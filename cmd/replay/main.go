// Command replay plays a stored or inline outcome on a virtual clock and
// prints the event timeline spectators would receive.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/BrandishReveal_Go/internal/bootstrap"
	"github.com/osse101/BrandishReveal_Go/internal/config"
	"github.com/osse101/BrandishReveal_Go/internal/frame"
	"github.com/osse101/BrandishReveal_Go/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var (
		opts   options
		spins  string
		logLvl string
	)
	flag.Int64Var(&opts.battleID, "battle", 0, "Stored battle id to replay")
	flag.StringVar(&spins, "spins", "", "Comma separated stored spin ids to replay side by side")
	flag.StringVar(&opts.file, "file", "", "Battle outcome JSON file to replay")
	flag.Int64Var(&opts.seed, "seed", 1, "Seed for the cosmetic strip filler")
	flag.DurationVar(&opts.step, "step", frame.DefaultFrameInterval, "Virtual frame interval")
	flag.DurationVar(&opts.limit, "limit", 10*time.Minute, "Virtual time limit")
	flag.BoolVar(&opts.cues, "cues", false, "Include sound cues in the timeline")
	flag.BoolVar(&opts.jsonOut, "json", false, "Print one JSON object per event")
	flag.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Catalog file, used without a database")
	flag.StringVar(&cfg.OutcomesDir, "outcomes", cfg.OutcomesDir, "Outcome directory, used without a database")
	flag.StringVar(&cfg.TuningPath, "tuning", cfg.TuningPath, "Tuning file")
	flag.StringVar(&logLvl, "log-level", "warn", "Log level written to stderr")
	flag.Parse()

	opts.spinIDs, err = parseIDs(spins)
	if err != nil {
		log.Fatalf("Invalid -spins: %v", err)
	}

	logger.InitLoggerWithWriter(logger.NewConfig(logLvl, "text", cfg.ServiceName, cfg.Version, cfg.Environment, false), os.Stderr)

	tuning, err := config.LoadTuning(cfg.TuningPath)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}

	ctx := context.Background()
	src, err := bootstrap.InitializeSources(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open sources: %v", err)
	}
	if src.DB != nil {
		defer src.DB.Close()
	}

	summary, err := newReplayer(src.Catalog, src.Outcomes, tuning, os.Stdout).run(ctx, opts)
	if err != nil {
		log.Printf("Replay failed: %v", err)
		flag.Usage()
		os.Exit(1)
	}
	if !opts.jsonOut {
		fmt.Printf("\nrounds played: %d, resolution: %s, scores: %v\n", summary.RoundsPlayed, summary.Resolution, summary.Scores)
	}
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("bad id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
