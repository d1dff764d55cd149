package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"streamscout/api"
	"streamscout/handlers"
	"streamscout/internal/metrics"
	"streamscout/utils"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

func serveRun(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	logCloser := setupLogging(s)
	defer logCloser.Close()

	m := metrics.New()
	a, err := newApp(s, m)
	if err != nil {
		return fmt.Errorf("wiring services: %w", err)
	}
	defer a.Close()

	limiter := api.PerMinute(s.RateLimitPerMinute, s.RateLimitBurst)
	defer limiter.Stop()

	router := newRouter(a, limiter)
	srv := &http.Server{
		Addr:              s.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.HTTPTimeout() + 15*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s (fallback=%s dedupe=%s)", s.ListenAddr, s.FallbackPolicy, s.DedupePolicy)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newRouter mounts every handler behind request id, panic recovery, access
// logging and per-IP throttling.
func newRouter(a *app, limiter *api.ClientRateLimiter) *mux.Router {
	router := utils.NewRouter(utils.NewOriginPolicy(a.settings.AllowedOrigins))
	router.Use(
		api.RequestIDMiddleware(),
		api.RecoverMiddleware(),
		api.AccessLogMiddleware(),
		limiter.Middleware("/health", "/metrics"),
	)
	handlers.Register(router, handlers.Routes{
		Availability: handlers.NewAvailabilityHandler(a.availability),
		Metadata:     handlers.NewMetadataHandler(a.metadata),
		Launch:       handlers.NewLaunchHandler(a.resolver, a.registry),
		Analytics:    handlers.NewAnalyticsHandler(a.recorder),
		Version:      handlers.NewVersionHandler(),
		Metrics:      a.metrics.Handler(),
	})
	return router
}
