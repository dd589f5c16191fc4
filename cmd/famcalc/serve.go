package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rgehrsitz/famcalc/internal/config"
	"github.com/rgehrsitz/famcalc/internal/httpapi"
	"github.com/rgehrsitz/famcalc/internal/moments"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators and the moments log over HTTP",
	Long: `Serve the JSON API. Settings come from the environment (HTTP_ADDR, DB_DRIVER,
DB_DSN, CORS_ORIGINS, REQUEST_TIMEOUT, DEBUG); flags override them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if cmd.Flags().Changed("addr") {
			cfg.HTTPAddr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("db-driver") {
			cfg.DBDriver, _ = cmd.Flags().GetString("db-driver")
		}
		if cmd.Flags().Changed("db") {
			cfg.DBDSN, _ = cmd.Flags().GetString("db")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		store, err := moments.Open(openCtx, cfg.DBDriver, cfg.DBDSN)
		cancel()
		if err != nil {
			return fmt.Errorf("db open failed: %w", err)
		}
		defer store.Close()

		engine := newEngine(cmd)
		if cfg.Debug {
			engine.SetLogger(simpleCLILogger{})
		}

		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.NewRouter(cfg, httpapi.Deps{Engine: engine, Store: store}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Printf("famcalc listening on %s (store: %s)", cfg.HTTPAddr, cfg.DBDriver)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		log.Printf("shutting down")
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address (overrides HTTP_ADDR)")
	serveCmd.Flags().String("db-driver", "sqlite", "Moments store driver (overrides DB_DRIVER)")
	serveCmd.Flags().String("db", "famcalc.db", "Database path or DSN (overrides DB_DSN)")
}
