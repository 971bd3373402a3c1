package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"

	"github.com/planwise/planwise/internal/assist"
	"github.com/planwise/planwise/internal/auth"
	"github.com/planwise/planwise/internal/config"
	"github.com/planwise/planwise/internal/httpapi"
	"github.com/planwise/planwise/internal/observability"
	"github.com/planwise/planwise/internal/plans"
	"github.com/planwise/planwise/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	planStore, err := plans.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("plan store init failed: %v", err)
	}
	defer planStore.Close()

	userStore, err := auth.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("user store init failed: %v", err)
	}
	defer userStore.Close()

	if cfg.DatabaseURL == "" {
		log.Printf("store mode: in-memory (set DATABASE_URL for postgres)")
	} else {
		log.Printf("store mode: postgres")
	}

	provider, err := assist.NewProvider(assist.Config{
		Mode:    cfg.AssistProvider,
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})
	if err != nil {
		log.Fatalf("assist provider init failed: %v", err)
	}
	if _, mock := provider.(*assist.MockProvider); mock {
		log.Printf("assist provider: mock (set OPENAI_API_KEY for real output)")
	} else {
		log.Printf("assist provider: openai model=%s", cfg.OpenAIModel)
	}

	sessions := session.NewManager(cfg.SessionTTL)
	sessions.StartJanitor(ctx, cfg.SessionTTL/4)

	authSvc := auth.NewService(userStore)
	planSvc := plans.NewService(planStore, metrics)
	assistSvc := assist.NewService(planSvc, provider, cfg.AssistTimeout, metrics)

	api := httpapi.New(cfg, sessions, authSvc, planSvc, assistSvc, metrics)

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(api.Router())

	srv := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: handler,
	}

	go func() {
		log.Printf("planwise listening on %s", cfg.BindAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
