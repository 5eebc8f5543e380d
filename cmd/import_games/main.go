// Command import_games loads a JSON schedule of canonical game records into
// the store and, with --process, scores the picks of games that arrive final.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"primetime-picks/app"
	"primetime-picks/config"
	"primetime-picks/logging"
	"primetime-picks/models"
	"primetime-picks/scoring"
	"primetime-picks/services"
)

func main() {
	file := flag.String("file", "", "path to a JSON array of game records (default stdin)")
	process := flag.Bool("process", true, "score picks on games loaded as final")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	in := os.Stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			logging.Fatalf("Failed to open %s: %v", *file, err)
		}
		defer f.Close()
		in = f
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	a, err := app.New(ctx, cfg, app.Options{})
	if err != nil {
		logging.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	summary, err := services.NewScheduleLoader(a.GameRepo).Load(ctx, in)
	if err != nil {
		logging.Errorf("Import failed: %v", err)
		os.Exit(1)
	}
	for _, e := range summary.Errors {
		logging.Warnf("Record %d (game %d) rejected: %s", e.Index, e.GameID, e.Message)
	}

	if *process && len(summary.Finished) > 0 {
		if err := scoreFinished(ctx, a, summary.Finished); err != nil {
			logging.Errorf("Scoring failed: %v", err)
			os.Exit(1)
		}
	}
	logging.Infof("Imported %d games (%d rejected, %d final)", summary.Loaded, len(summary.Errors), len(summary.Finished))
}

func scoreFinished(ctx context.Context, a *app.App, games []models.Game) error {
	var touched []models.StatsKey
	for i := range games {
		res, err := a.Results.ProcessGameCompletion(ctx, &games[i], false)
		if errors.Is(err, scoring.ErrScoresMissing) {
			continue
		}
		if err != nil {
			return err
		}
		touched = append(touched, res.Touched...)
	}
	return a.Stats.RecomputeMany(ctx, touched)
}
