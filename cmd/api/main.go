package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/smilecare/clinic-api/config"
	"github.com/smilecare/clinic-api/internal/authz"
	"github.com/smilecare/clinic-api/internal/handler"
	assignmentHandler "github.com/smilecare/clinic-api/internal/handler/assignment"
	auditHandler "github.com/smilecare/clinic-api/internal/handler/audit"
	authHandler "github.com/smilecare/clinic-api/internal/handler/auth"
	documentHandler "github.com/smilecare/clinic-api/internal/handler/document"
	inventoryHandler "github.com/smilecare/clinic-api/internal/handler/inventory"
	noteHandler "github.com/smilecare/clinic-api/internal/handler/note"
	patientHandler "github.com/smilecare/clinic-api/internal/handler/patient"
	queueHandler "github.com/smilecare/clinic-api/internal/handler/queue"
	treatmentHandler "github.com/smilecare/clinic-api/internal/handler/treatment"
	userHandler "github.com/smilecare/clinic-api/internal/handler/user"
	visitHandler "github.com/smilecare/clinic-api/internal/handler/visit"
	"github.com/smilecare/clinic-api/internal/middleware"
	"github.com/smilecare/clinic-api/internal/repository/postgres"
	"github.com/smilecare/clinic-api/internal/router"
	assignmentService "github.com/smilecare/clinic-api/internal/service/assignment"
	auditService "github.com/smilecare/clinic-api/internal/service/audit"
	authService "github.com/smilecare/clinic-api/internal/service/auth"
	documentService "github.com/smilecare/clinic-api/internal/service/document"
	inventoryService "github.com/smilecare/clinic-api/internal/service/inventory"
	noteService "github.com/smilecare/clinic-api/internal/service/note"
	patientService "github.com/smilecare/clinic-api/internal/service/patient"
	queueService "github.com/smilecare/clinic-api/internal/service/queue"
	treatmentService "github.com/smilecare/clinic-api/internal/service/treatment"
	userService "github.com/smilecare/clinic-api/internal/service/user"
	visitService "github.com/smilecare/clinic-api/internal/service/visit"
	"github.com/smilecare/clinic-api/pkg/auth"
	"github.com/smilecare/clinic-api/pkg/logger"
	"github.com/smilecare/clinic-api/pkg/metrics"
	"github.com/smilecare/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	patientRepo := postgres.NewPatientRepository(base)
	assignmentRepo := postgres.NewAssignmentRepository(base)
	visitRepo := postgres.NewVisitRepository(base)
	noteRepo := postgres.NewNoteRepository(base)
	documentRepo := postgres.NewDocumentRepository(base)
	queueRepo := postgres.NewQueueRepository(base)
	caseRepo := postgres.NewCaseRepository(base)
	inventoryRepo := postgres.NewInventoryRepository(base)
	auditRepo := postgres.NewAuditRepository(base)
	outboxRepo := postgres.NewOutboxRepository(base)
	lookupRepo := postgres.NewLookupRepository(base)

	// Access engine
	appMetrics := metrics.NewMetrics("clinic", "api")
	engine := authz.NewEngine(authz.DefaultMatrix(), lookupRepo, assignmentRepo, appLogger, appMetrics)
	guard := authz.NewGuard(lookupRepo)

	// Audit trail
	trail, err := zap.NewProduction()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize audit trail")
	}
	defer trail.Sync()
	auditSvc := auditService.NewService(auditRepo, trail)

	// Services
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})
	hasher := security.NewBcryptHasher(0)

	authSvc := authService.NewService(userRepo, jwtSvc, auditSvc, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	userSvc := userService.NewService(userRepo, hasher, auditSvc)
	patientSvc := patientService.NewService(patientRepo, auditSvc)
	assignmentSvc := assignmentService.NewService(assignmentRepo, patientRepo, userRepo, outboxRepo, auditSvc)
	visitSvc := visitService.NewService(visitRepo, auditSvc)
	noteSvc := noteService.NewService(noteRepo, visitRepo, guard, auditSvc)
	documentSvc := documentService.NewService(documentRepo, guard, auditSvc)
	queueSvc := queueService.NewService(queueRepo, auditSvc)
	treatmentSvc := treatmentService.NewService(caseRepo, auditSvc)
	inventorySvc := inventoryService.NewService(inventoryRepo, auditSvc)

	// Middleware
	authMW := middleware.NewAuthMiddleware(jwtSvc, userRepo)
	accessMW := middleware.NewAccessMiddleware(engine)

	// Handlers
	if err := handler.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register request validators")
	}
	h := handler.NewHandler()

	r := router.NewRouter(
		authMW,
		accessMW,
		authHandler.NewHandler(authSvc),
		patientHandler.NewHandler(patientSvc),
		visitHandler.NewHandler(visitSvc),
		noteHandler.NewHandler(noteSvc),
		documentHandler.NewHandler(documentSvc),
		queueHandler.NewHandler(queueSvc),
		treatmentHandler.NewHandler(treatmentSvc),
		assignmentHandler.NewHandler(assignmentSvc),
		inventoryHandler.NewHandler(inventorySvc),
		userHandler.NewHandler(userSvc),
		auditHandler.NewHandler(auditSvc),
		h,
		router.RouterConfig{
			RateLimit:     rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    corsConfig(cfg),
			MetricsPrefix: cfg.Monitoring.MetricsPrefix,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		cors.AllowOrigins = cfg.Security.AllowedOrigins
	}
	if len(cfg.Security.AllowedMethods) > 0 {
		cors.AllowMethods = cfg.Security.AllowedMethods
	}
	if len(cfg.Security.AllowedHeaders) > 0 {
		cors.AllowHeaders = cfg.Security.AllowedHeaders
	}
	return cors
}
