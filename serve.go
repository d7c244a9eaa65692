package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"award_vetter/config"
	"award_vetter/generator"
	"award_vetter/logger"
	"award_vetter/publisher"
	"award_vetter/server"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Server.Addr = listenAddr
	}

	log, err := logger.New(cfg.Log.Mode, verbose || cfg.Log.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	if cfg.Log.Mode == "prod" || cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	llm, err := buildLLM(ctx, cfg.LLM, log)
	if err != nil {
		return err
	}
	catalog := catalogFrom(cfg)
	agent, err := generator.NewAgent(llm, catalog)
	if err != nil {
		return err
	}

	var tracker publisher.Tracker
	if cfg.Sheet.HasCredentials() {
		tracker = publisher.NewSheetsTracker(publisher.SheetsSettings{
			SpreadsheetName: cfg.Sheet.SpreadsheetName,
			SpreadsheetID:   cfg.Sheet.SpreadsheetID,
			Worksheet:       cfg.Sheet.Worksheet,
			CredentialsFile: cfg.Sheet.CredentialsFile,
			CredentialsJSON: cfg.Sheet.CredentialsJSON,
		}, log.With("component", "tracker"))
	} else {
		log.Info("tracking sheet credentials not configured; accepted entries will not be mirrored")
	}

	hash, err := passwordHash(cfg.Auth)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		Agent:        agent,
		Publisher:    publisher.New(tracker, catalog.IsExtended, log.With("component", "publisher")),
		PasswordHash: hash,
		SheetURL:     cfg.Sheet.URL,
		CORSOrigins:  cfg.Server.CORSOrigins,
		SecureCookie: cfg.Server.SecureCookie,
		Log:          log,
	})
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", httpSrv.Addr, "provider", cfg.LLM.Provider, "model", cfg.LLM.PrimaryModel)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("server shutdown complete")
	return nil
}
