// Command tracker serves the NBA statistics tracker.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/utakatalp/nba-tracker/internal/auth"
	"github.com/utakatalp/nba-tracker/internal/config"
	"github.com/utakatalp/nba-tracker/internal/store"
	"github.com/utakatalp/nba-tracker/internal/telemetry"
	"github.com/utakatalp/nba-tracker/internal/timeouts"
	"github.com/utakatalp/nba-tracker/internal/web"
)

const serviceName = "nba-tracker"

func main() {
	seed := flag.Bool("seed", false, "insert sample data into an empty database")
	migrateOnly := flag.Bool("migrate-only", false, "create the schema and exit")
	flag.Parse()

	if err := run(*seed, *migrateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "tracker: %v\n", err)
		os.Exit(1)
	}
}

func run(seed, migrateOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	st, err := store.Open(store.Config{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DSN(),
		QueryTimeout: cfg.QueryTimeout,
	})
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}
	log.Println("Migration complete")
	if migrateOnly {
		return nil
	}

	if seed || cfg.SeedOnStart {
		if _, err := st.Seed(ctx); err != nil {
			return err
		}
	}

	sessions, err := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return err
	}
	srv, err := web.New(st, auth.NewService(st), sessions)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
		ReadTimeout:       timeouts.Read,
		WriteTimeout:      timeouts.Write,
		IdleTimeout:       timeouts.Idle,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (%s)", cfg.Addr, st.Driver())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	log.Println("Server exited")
	return nil
}
