package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the todo API server",
		RunE:  runServe,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema and exit",
		RunE:  runMigrate,
	}

	rootCmd := &cobra.Command{
		Use:          "todo-api",
		Short:        "Todo list HTTP service with bearer-token auth",
		SilenceUsage: true,
		RunE:         runServe,
	}
	rootCmd.AddCommand(serveCmd, migrateCmd)
	return rootCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg := config.Load()

	srv, err := server.New(cfg)
	if err != nil {
		log.Printf("Failed to start server: %v", err)
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("Server error: %v", err)
		}
		return errors.Join(err, shutdown(srv))
	case <-quit:
	}

	log.Println("Shutting down server...")
	return shutdown(srv)
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdown releases the server's connections whether or not it ever served.
func shutdown(srv shutdowner) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.Migrate(db); err != nil {
		log.Printf("Failed to run migrations: %v", err)
		return err
	}
	return nil
}
