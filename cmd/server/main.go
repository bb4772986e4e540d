package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kubeask/kubeask/internal/api/middleware"
	"github.com/kubeask/kubeask/internal/api/rest"
	"github.com/kubeask/kubeask/internal/config"
	"github.com/kubeask/kubeask/internal/dispatch"
	"github.com/kubeask/kubeask/internal/intent"
	"github.com/kubeask/kubeask/internal/k8s"
	"github.com/kubeask/kubeask/internal/llm/mistral"
	"github.com/kubeask/kubeask/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(&logging.Config{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("kubeask starting", zap.Int("port", cfg.Port))

	// Completion service client
	llmClient, err := mistral.NewClient(cfg.MistralAPIKey, cfg.MistralModel,
		mistral.WithMaxTokens(cfg.MistralMaxTokens),
		mistral.WithTemperature(cfg.MistralTemperature),
		mistral.WithTimeout(time.Duration(cfg.MistralTimeoutSec)*time.Second),
	)
	if err != nil {
		logger.Fatal("failed to create Mistral client", zap.Error(err))
	}
	if cfg.MistralBaseURL != mistral.DefaultBaseURL {
		llmClient.SetBaseURL(cfg.MistralBaseURL)
	}

	// Cluster client
	cluster, err := k8s.NewClient(cfg.KubeconfigPath, cfg.KubeContext)
	if err != nil {
		logger.Fatal("failed to create Kubernetes client", zap.Error(err))
	}
	cluster.SetTimeout(time.Duration(cfg.K8sTimeoutSec) * time.Second)
	if cfg.K8sRateLimitPerSec > 0 {
		burst := cfg.K8sRateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		cluster.SetLimiter(rate.NewLimiter(rate.Limit(cfg.K8sRateLimitPerSec), burst))
	}

	dispatcher := dispatch.NewDispatcher(
		intent.NewClassifier(llmClient),
		cluster,
		cfg.Namespace,
		logger,
	)

	// Setup HTTP router
	router := mux.NewRouter()
	handler := rest.NewHandler(dispatcher, logger)
	rest.SetupRoutes(router, handler)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(logger))
	router.Use(middleware.Recovery(logger))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      c.Handler(router),
		ReadTimeout:  time.Duration(cfg.RequestTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("namespace", cfg.Namespace),
			zap.String("model", cfg.MistralModel))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("forced shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
