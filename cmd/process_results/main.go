// Command process_results scores picks on finished games and recomputes the
// stats they touch. It is the manual counterpart of the server's results job.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"primetime-picks/app"
	"primetime-picks/config"
	"primetime-picks/logging"
	"primetime-picks/services"
)

func main() {
	since := flag.String("since", "24h", "process games final since this RFC3339 time or lookback duration")
	week := flag.Int("week", 0, "rescore every final game of this week instead of using --since")
	season := flag.Int("season", 0, "season for --week (defaults to CURRENT_SEASON)")
	dryRun := flag.Bool("dry-run", false, "report what would change without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}
	logCfg, logFile, err := cfg.ToLoggingConfig("process_results.log")
	if err != nil {
		logging.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()
	logging.Configure(logCfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	a, err := app.New(ctx, cfg, app.Options{})
	if err != nil {
		logging.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	var summary services.ProcessSummary
	if *week > 0 {
		s := *season
		if s == 0 {
			s = cfg.App.CurrentSeason
		}
		logging.Infof("Rescoring season %d week %d (dry run: %t)", s, *week, *dryRun)
		summary, err = a.Results.ProcessWeek(ctx, s, *week, *dryRun)
	} else {
		from, perr := parseSince(*since, time.Now().UTC())
		if perr != nil {
			logging.Fatalf("Invalid --since: %v", perr)
		}
		logging.Infof("Processing games final since %s (dry run: %t)", from.Format(time.RFC3339), *dryRun)
		summary, err = a.Results.ProcessFinishedGamesSince(ctx, from, *dryRun)
	}
	if err != nil {
		logging.Errorf("Processing failed: %v", err)
		os.Exit(1)
	}

	if !*dryRun {
		if err := a.Stats.RecomputeMany(ctx, summary.Touched); err != nil {
			logging.Errorf("Stats recomputation failed: %v", err)
			os.Exit(1)
		}
	}

	fmt.Printf("games processed: %d\ngames skipped:   %d\npicks scored:    %d\npicks changed:   %d\naggregates:      %d\n",
		summary.GamesProcessed, summary.GamesSkipped, summary.PicksScored, summary.PicksChanged, len(summary.Touched))
}

// parseSince accepts an absolute RFC3339 time or a duration to look back
// from now.
func parseSince(s string, now time.Time) (time.Time, error) {
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return time.Time{}, fmt.Errorf("lookback %s is negative", s)
		}
		return now.Add(-d), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither a duration nor an RFC3339 time", s)
	}
	return t.UTC(), nil
}
