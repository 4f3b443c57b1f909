package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/sis-reg-api/api/swagger"
	"github.com/noah-isme/sis-reg-api/internal/catalog"
	"github.com/noah-isme/sis-reg-api/internal/handler"
	"github.com/noah-isme/sis-reg-api/internal/middleware"
	"github.com/noah-isme/sis-reg-api/internal/models"
	"github.com/noah-isme/sis-reg-api/internal/repository"
	"github.com/noah-isme/sis-reg-api/internal/service"
	"github.com/noah-isme/sis-reg-api/pkg/cache"
	"github.com/noah-isme/sis-reg-api/pkg/config"
	"github.com/noah-isme/sis-reg-api/pkg/database"
	"github.com/noah-isme/sis-reg-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sis-reg-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sis-reg-api/pkg/middleware/requestid"
)

// @title SIS Registration Gateway
// @version 0.1.0
// @description Course registration orchestrator for the student portal
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsService := service.NewMetricsService()
	catalogClient := catalog.NewClient(cfg.Catalog, metricsService, logr)

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, snapshot cache disabled", "error", err)
		redisClient = nil
	}
	snapshots := repository.NewSnapshotRepository(redisClient, logr)
	defer snapshots.Close() //nolint:errcheck

	validate := validator.New()
	authService := service.NewAuthService(cfg.JWT.Secret, logr)

	var auditService *service.AuditService
	var recorder *service.ActionRecorder
	registrationCfg := service.RegistrationConfig{
		Policy: models.CreditPolicy{
			MinCredits: cfg.Registration.MinCredits,
			MaxCredits: cfg.Registration.MaxCredits,
		},
		DefaultSection: cfg.Registration.DefaultSection,
		SnapshotTTL:    cfg.Catalog.CacheTTL,
	}

	var registrationService *service.RegistrationService
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to database", "error", err)
		}
		defer db.Close() //nolint:errcheck

		actionRepo := repository.NewActionRepository(db)
		auditService = service.NewAuditService(actionRepo, logr)
		recorder = service.NewActionRecorder(actionRepo, service.RecorderConfig{
			Workers:    cfg.Audit.Workers,
			BufferSize: cfg.Audit.BufferSize,
			MaxRetries: cfg.Audit.MaxRetries,
			RetryDelay: cfg.Audit.RetryDelay,
		}, logr)
		recorder.Start(context.Background())
		defer recorder.Stop()

		registrationService = service.NewRegistrationService(catalogClient, snapshots, recorder, metricsService, registrationCfg, validate, logr)
	} else {
		registrationService = service.NewRegistrationService(catalogClient, snapshots, nil, metricsService, registrationCfg, validate, logr)
	}

	directoryService := service.NewDirectoryService(catalogClient, service.DirectoryConfig{
		MinQueryLength: cfg.Directory.MinQueryLength,
		MaxResults:     cfg.Directory.MaxResults,
	}, logr)

	registrationHandler := handler.NewRegistrationHandler(registrationService, auditService)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authService))
	{
		session := api.Group("/registration/session")
		{
			session.GET("", registrationHandler.Describe)
			session.POST("/refresh", registrationHandler.Refresh)
			session.POST("/cart/items", registrationHandler.AddToCart)
			session.DELETE("/cart/items/:courseId", registrationHandler.RemoveFromCart)
			session.POST("/commit", registrationHandler.Commit)
			session.POST("/drop", registrationHandler.Drop)

			subject := session.Group("/subject", middleware.RequireStaff())
			{
				subject.POST("", registrationHandler.SelectSubject)
				subject.DELETE("", registrationHandler.ClearSubject)
			}
		}

		api.GET("/students/search", middleware.RequireStaff(), directoryHandler.Search)

		if auditService != nil {
			api.GET("/registration/actions", middleware.RequireStaff(), registrationHandler.Actions)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
