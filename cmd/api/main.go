package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/clinicflow/clinicflow/internal/config"
	v1 "github.com/clinicflow/clinicflow/internal/handler/v1"
	"github.com/clinicflow/clinicflow/internal/middleware"
	"github.com/clinicflow/clinicflow/internal/repository"
	"github.com/clinicflow/clinicflow/internal/service"
	"github.com/clinicflow/clinicflow/pkg/auth"
	"github.com/clinicflow/clinicflow/pkg/database"
	"github.com/clinicflow/clinicflow/pkg/logger"
	"github.com/clinicflow/clinicflow/pkg/metrics"
	"github.com/clinicflow/clinicflow/pkg/tracer"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		log.Fatal("initializing tracer", zap.Error(err))
	}
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("connecting to database", zap.Error(err))
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("migrating database", zap.Error(err))
	}

	collect := metrics.NewCollector("clinicflow")
	if sqlDB, err := db.DB(); err == nil {
		collect.DBConnections.Set(float64(sqlDB.Stats().OpenConnections))
	}

	// Repositories
	apptRepo := repository.NewAppointmentRepo(db)
	availRepo := repository.NewAvailabilityRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	dirRepo := repository.NewDirectoryRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// Services
	auditSvc := service.NewAuditService(auditRepo, log, collect)
	defer auditSvc.Shutdown()

	settingsSvc := service.NewSettingsService(settingsRepo, log)
	availSvc := service.NewAvailabilityService(availRepo, dirRepo.Doctors(), settingsSvc, auditSvc, collect, log)
	schedSvc := service.NewSchedulingService(apptRepo, availRepo, dirRepo.Doctors(), dirRepo.Patients(), auditSvc, collect, log)

	verifier := auth.NewVerifier(cfg.JWT)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Observe(collect, log))

	v1.Register(router, verifier,
		v1.NewAppointmentHandler(schedSvc),
		v1.NewAvailabilityHandler(availSvc),
		v1.NewSettingsHandler(settingsSvc),
	)
	router.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
