package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soufieneghribi/credit-dossier-service/internal/application/usecase"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/port"
	"github.com/soufieneghribi/credit-dossier-service/internal/domain/service"
	"github.com/soufieneghribi/credit-dossier-service/internal/infrastructure/adapter"
	"github.com/soufieneghribi/credit-dossier-service/internal/infrastructure/config"
	"github.com/soufieneghribi/credit-dossier-service/internal/infrastructure/kafka"
	pgRepo "github.com/soufieneghribi/credit-dossier-service/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/soufieneghribi/credit-dossier-service/internal/presentation/grpc"
	"github.com/soufieneghribi/credit-dossier-service/internal/presentation/middleware"
	"github.com/soufieneghribi/credit-dossier-service/internal/presentation/rest"
	"github.com/soufieneghribi/credit-dossier-service/pkg/auth"
	pkgkafka "github.com/soufieneghribi/credit-dossier-service/pkg/kafka"
	"github.com/soufieneghribi/credit-dossier-service/pkg/observability"
	pkgpostgres "github.com/soufieneghribi/credit-dossier-service/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Observability.LogLevel,
		Format:  cfg.Observability.LogFormat,
		Service: cfg.ServiceName,
	})

	logger.Info("starting credit-dossier-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing.
	if cfg.Observability.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.Observability.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	// Metrics.
	_, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), "file://migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Infrastructure adapters.
	dossierRepo := pgRepo.NewDossierRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
	defer kafkaProducer.Close()
	publisher := kafka.NewEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	var ruleSource port.RuleSource
	if cfg.RuleSource.BaseURL != "" {
		ruleSource = adapter.NewHTTPRuleSource(cfg.RuleSource)
	} else {
		logger.Info("no rule source configured, using built-in stub rules")
		ruleSource = adapter.NewStubRuleSource()
	}
	catalog := adapter.NewCachedRuleCatalog(ruleSource, logger)
	catalog.Load(ctx)

	documents, err := adapter.NewFilesystemDocumentStore(cfg.Documents.StagingDir, cfg.Documents.StoreDir)
	if err != nil {
		logger.Error("failed to initialize document store", "error", err)
		os.Exit(1)
	}

	validator := service.NewSimulationValidator()
	evaluator := service.NewEligibilityEvaluator()

	// Use cases.
	startUC := usecase.NewStartDossierUseCase(dossierRepo, publisher)
	simulateUC := usecase.NewRunSimulationUseCase(dossierRepo, catalog, validator)
	changeTypeUC := usecase.NewChangeCreditTypeUseCase(dossierRepo, catalog)
	eligibilityUC := usecase.NewCheckEligibilityUseCase(dossierRepo, catalog, evaluator, publisher)
	createUC := usecase.NewCreateDossierUseCase(dossierRepo, publisher)
	attachUC := usecase.NewAttachDocumentUseCase(dossierRepo, documents)
	removeUC := usecase.NewRemoveDocumentUseCase(dossierRepo, documents)
	uploadUC := usecase.NewUploadDocumentUseCase(dossierRepo, documents, publisher)
	submitUC := usecase.NewSubmitDossierUseCase(dossierRepo, documents, publisher)
	backUC := usecase.NewStepBackUseCase(dossierRepo, documents)
	getUC := usecase.NewGetDossierUseCase(dossierRepo)
	listUC := usecase.NewListDossiersUseCase(dossierRepo)
	reviewUC := usecase.NewReviewDossierUseCase(dossierRepo, publisher)
	ruleUC := usecase.NewGetCreditRuleUseCase(catalog)

	// JWT service (validation-only: public key preferred, secret as fallback).
	jwtCfg := auth.JWTConfig{Issuer: "storefront-gateway"}
	if cfg.Auth.JWTPublicKeyPath != "" {
		keyData, loadErr := auth.LoadKeyFromFile(cfg.Auth.JWTPublicKeyPath)
		if loadErr != nil {
			logger.Error("failed to load JWT public key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	} else {
		jwtCfg.Secret = cfg.Auth.JWTSecret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewDossierHandler(startUC, simulateUC, eligibilityUC, createUC, submitUC, getUC)
	grpcServer := grpcPresentation.NewServer(grpcHandler, logger, jwtSvc)

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(logger, func(ctx context.Context) error {
		return pkgpostgres.HealthCheck(ctx, pool)
	}).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)
	rest.NewDossierHandler(
		startUC, simulateUC, changeTypeUC, eligibilityUC, createUC,
		attachUC, removeUC, uploadUC, submitUC, backUC,
		getUC, listUC, reviewUC, ruleUC,
	).RegisterRoutes(mux)

	handler := middleware.LoggingMiddleware(logger)(
		middleware.RateLimitMiddleware(middleware.NewRateLimiter(50))(
			middleware.AuthMiddleware(jwtSvc, []string{"/healthz", "/readyz", "/metrics"})(mux),
		),
	)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-dossier-service stopped")
}
