package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/chronic-risk-manager/community-health-frontend/internal/config"
	authHandler "github.com/chronic-risk-manager/community-health-frontend/internal/handler/auth"
	dashboardHandler "github.com/chronic-risk-manager/community-health-frontend/internal/handler/dashboard"
	followupHandler "github.com/chronic-risk-manager/community-health-frontend/internal/handler/followup"
	patientHandler "github.com/chronic-risk-manager/community-health-frontend/internal/handler/patient"
	"github.com/chronic-risk-manager/community-health-frontend/internal/router"
	"github.com/chronic-risk-manager/community-health-frontend/internal/session"
	"github.com/chronic-risk-manager/community-health-frontend/internal/upstream"
	"github.com/chronic-risk-manager/community-health-frontend/pkg/circuitbreaker"
	"github.com/chronic-risk-manager/community-health-frontend/pkg/logger"
	"github.com/chronic-risk-manager/community-health-frontend/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger(nil).Fatal(err, "failed to load configuration")
	}

	log := logger.NewLogger(&logger.Config{Level: logger.ParseLevel(cfg.Logging.Level)})

	// Session is read once at startup; afterwards every route evaluation
	// goes through the store.
	store := session.NewStore(cfg.Session.File)

	m := metrics.New("community_health")
	client := upstream.NewClient(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
		Breaker: circuitbreaker.Settings{
			Name:        "upstream",
			MaxFailures: cfg.Upstream.Breaker.MaxFailures,
			Timeout:     cfg.Upstream.Breaker.Timeout,
		},
	}, store, m)
	client.OnUnauthorized = func() {
		if err := store.Clear(); err != nil {
			log.Error(err, "failed to clear expired session")
		}
	}

	dashboardH := dashboardHandler.NewHandler(client, store)
	authH := authHandler.NewHandler(client, store)
	patientH := patientHandler.NewHandler(client, store, patientHandler.Config{
		ReverseList: cfg.Listing.ReversePatients,
	})
	followupH := followupHandler.NewHandler(client, store)

	r := router.New(store, router.Config{
		RateLimitEnabled:  cfg.RateLimit.Enabled,
		RateLimit:         rate.Limit(cfg.RateLimit.RPS),
		RateBurst:         cfg.RateLimit.Burst,
		PrometheusEnabled: cfg.Monitoring.PrometheusEnabled,
		MetricsPath:       cfg.Monitoring.MetricsPath,
		MetricsPrefix:     "community_health",
		TemplatesGlob:     "web/templates/*.tmpl",
		StaticDir:         "web/static",
	}, dashboardH.Show, dashboardH, authH, patientH, followupH)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting web client", "port", cfg.Server.Port, "upstream", cfg.Upstream.BaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
}
