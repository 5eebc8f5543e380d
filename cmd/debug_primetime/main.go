// Command debug_primetime prints a week's games with their Eastern kickoff
// and primetime classification.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"primetime-picks/app"
	"primetime-picks/config"
	"primetime-picks/logging"
	"primetime-picks/models"
)

func main() {
	week := flag.Int("week", 1, "week to inspect")
	season := flag.Int("season", 0, "season (defaults to CURRENT_SEASON)")
	primetimeOnly := flag.Bool("primetime", false, "only list primetime games")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}
	if *season == 0 {
		*season = cfg.App.CurrentSeason
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	a, err := app.New(ctx, cfg, app.Options{})
	if err != nil {
		logging.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	views, err := a.Games.WeekGames(ctx, *season, *week)
	if err != nil {
		logging.Fatalf("Failed to load games: %v", err)
	}
	fmt.Printf("Season %d week %d, threshold %s ET\n\n", *season, *week, cfg.App.PrimetimeThreshold)
	printGames(os.Stdout, views, *primetimeOnly)
}

func printGames(w io.Writer, views []models.GameView, primetimeOnly bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMATCHUP\tKICKOFF (ET)\tTYPE\tSTATUS\tPRIMETIME")
	count := 0
	for _, v := range views {
		if primetimeOnly && !v.IsPrimetime {
			continue
		}
		label := "-"
		if v.IsPrimetime {
			label = v.PrimetimeType
			count++
		}
		kickoff := "TBD"
		if !v.KickoffET.IsZero() {
			kickoff = v.KickoffET.Format("Mon Jan 2 3:04 PM")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", v.ID, v.Matchup(), kickoff, v.GameType, v.StatusLabel, label)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d of %d games are primetime\n", count, len(views))
}
