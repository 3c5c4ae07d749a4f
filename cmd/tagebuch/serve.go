package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tagebuch/internal/config"
	"tagebuch/internal/db"
	"tagebuch/internal/handler"
	transport "tagebuch/internal/http"
	"tagebuch/internal/logger"
	"tagebuch/internal/network"
	"tagebuch/internal/repository"
	"tagebuch/internal/scheduler"
	"tagebuch/internal/service"
	"tagebuch/internal/service/ai"
	"tagebuch/internal/snowflake"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the diary server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg config.Config) error {
	dbConn, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	httpClient, err := network.NewHTTPClient(cfg.Correction.ProxyURL, cfg.Correction.Timeout)
	if err != nil {
		return err
	}

	slotRepo := repository.NewSlotRepository(dbConn)
	entryStore := repository.NewEntryStore(slotRepo)

	var local *ai.Runtime
	if cfg.Correction.Provider == config.ProviderLocal {
		// The local server needs no proxy.
		p, err := ai.NewProvider(ai.Config{
			Provider: ai.ProviderLocal,
			BaseURL:  cfg.Correction.LocalURL,
			Model:    cfg.Correction.LocalModel,
		})
		if err != nil {
			return err
		}
		local = ai.NewRuntime(p, ai.WithInitTimeout(cfg.Correction.InitTimeout))
	}

	limiter := ai.NewRateLimiter(cfg.Correction.RateLimit)
	correctionService := service.NewCorrectionService(slotRepo, limiter, local, service.WithHTTPClient(httpClient))
	entryService := service.NewEntryService(entryStore)
	settingsService := service.NewSettingsService(slotRepo, correctionService, limiter)
	if err := settingsService.RestoreRateLimit(ctx); err != nil {
		return err
	}

	ids, err := snowflake.NewGenerator(cfg.NodeID)
	if err != nil {
		return err
	}
	editorService := service.NewEditorService(entryService, correctionService, ids, service.EditorOptions{
		Debounce: cfg.Editor.Debounce,
		Timeout:  cfg.Correction.Timeout,
		TTL:      cfg.Editor.SessionTTL,
	})
	defer editorService.Shutdown()

	router := transport.NewRouter(
		handler.NewEntryHandler(entryService, time.Local),
		handler.NewEditorHandler(editorService),
		handler.NewSettingsHandler(settingsService, correctionService),
		cfg.StaticDir,
	)

	sched := scheduler.New(editorService, sweepInterval)
	sched.Start()
	defer sched.Stop()

	if local != nil {
		defer local.Wait()
	}

	logger.Info("server starting", "module", "cmd", "action", "serve", "resource", "http", "result", "ok",
		"addr", cfg.Addr, "db", cfg.DBPath, "static", cfg.StaticDir, "provider", cfg.Correction.Provider)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down", "module", "cmd", "action", "shutdown", "resource", "http", "result", "ok")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
