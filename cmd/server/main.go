package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"primetime-picks/app"
	"primetime-picks/config"
	"primetime-picks/database"
	"primetime-picks/handlers"
	"primetime-picks/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logCfg, logFile, err := cfg.ToLoggingConfig("server.log")
	if err != nil {
		logging.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()
	logging.Configure(logCfg)
	cfg.LogConfiguration()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, app.Options{AllowMemoryFallback: cfg.App.IsDevelopment})
	if err != nil {
		logging.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	if cfg.App.ResultsJobEnabled {
		if err := a.Scheduler.Start(); err != nil {
			logging.Fatalf("Failed to start results job: %v", err)
		}
	}

	if cfg.App.WatchFinalGames {
		if a.DB == nil {
			logging.Warn("WATCH_FINAL_GAMES ignored: no database connection")
		} else {
			go database.NewGameWatcher(a.DB).Watch(ctx, a.Scheduler.HandleFinal)
		}
	}

	var store handlers.Pinger
	if a.DB != nil {
		store = a.DB
	}
	router := handlers.NewRouter(handlers.Deps{
		Games:         a.Games,
		Picks:         a.Picks,
		Stats:         a.Stats,
		Leaderboard:   a.Leaderboard,
		Tokens:        a.Tokens,
		Store:         store,
		Teams:         handlers.TeamLookup{All: config.Teams, Find: config.LookupTeam},
		CurrentSeason: cfg.App.CurrentSeason,
		Development:   cfg.App.IsDevelopment,
		BehindProxy:   cfg.Server.BehindProxy,
		Origins:       cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Infof("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logging.Errorf("Server failed: %v", err)
		}
	case <-ctx.Done():
		logging.Info("Shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Errorf("Graceful shutdown failed: %v", err)
	}
}
