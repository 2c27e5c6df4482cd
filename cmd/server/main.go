// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/avicenna-labs/consult-core/internal/config"
	"github.com/avicenna-labs/consult-core/internal/handlers"
	"github.com/avicenna-labs/consult-core/internal/middleware"
	"github.com/avicenna-labs/consult-core/internal/services"
	"github.com/avicenna-labs/consult-core/internal/services/consultation"
	"github.com/avicenna-labs/consult-core/internal/services/emergency"
	"github.com/avicenna-labs/consult-core/internal/services/provider"
	"github.com/avicenna-labs/consult-core/internal/services/validator"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("consult_core")

	// --- Provider Pool ---
	poolConfig := provider.DefaultConfig()
	poolConfig.CallTimeout = cfg.ProviderCallTimeout
	poolConfig.ProbeTimeout = cfg.ProbeTimeout

	pool, err := provider.NewPool(poolConfig, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize provider pool: %v", err)
	}

	configured := cfg.ConfiguredProviders()
	if len(configured) == 0 {
		log.Printf("WARNING: no AI providers configured; every consultation will use the safety fallback")
	}
	for i, pc := range configured {
		adapter, err := provider.NewOpenAIAdapter(provider.ProviderConfig{
			ID:          pc.ID,
			APIKey:      pc.APIKey,
			BaseURL:     pc.BaseURL,
			Model:       pc.Model,
			Priority:    i,
			Temperature: 0.1, // low for medical caution
			MaxTokens:   1024,
		})
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize provider %s: %v", pc.ID, err)
		}
		if err := pool.Register(pc.ID, i, adapter); err != nil {
			log.Fatalf("FATAL: Failed to register provider %s: %v", pc.ID, err)
		}
	}

	prometheus.DefaultRegisterer.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "consultation_providers_available",
			Help: "Providers currently not marked DOWN",
		},
		func() float64 { return float64(pool.Status().AvailableCount) },
	))

	// --- Core Services ---
	detector := emergency.NewDetector()
	responseValidator := validator.NewValidator()
	metrics := consultation.NewMetrics(prometheus.DefaultRegisterer)

	consultService, err := consultation.NewService(
		consultation.DefaultConfig(),
		detector,
		responseValidator,
		pool,
		logger,
		metrics,
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize consultation service: %v", err)
	}

	// --- Background Health Probes ---
	probeCron := cron.New()
	if _, err := probeCron.AddFunc(cfg.HealthProbeSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ProbeTimeout+5*time.Second)
		defer cancel()
		pool.HealthCheckAll(ctx)
	}); err != nil {
		log.Fatalf("FATAL: Invalid health probe schedule %q: %v", cfg.HealthProbeSchedule, err)
	}
	probeCron.Start()
	defer probeCron.Stop()

	// --- Handlers & Router ---
	consultationHandler := handlers.NewConsultationHandler(consultService)

	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/consultation", consultationHandler.HandleConsultation).Methods("POST")
	r.HandleFunc("/api/status", consultationHandler.HandleStatus).Methods("GET")
	r.HandleFunc("/api/statistics", consultationHandler.HandleStatistics).Methods("GET")

	// --- Server Configuration ---
	port := ":" + cfg.ServerPort
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.Printf("Consultation safety pipeline starting on port %s (%d providers configured)", port, len(configured))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
