package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hisdocs/his-docs-api/api/swagger"
	"github.com/hisdocs/his-docs-api/internal/handler"
	"github.com/hisdocs/his-docs-api/internal/middleware"
	"github.com/hisdocs/his-docs-api/internal/repository"
	"github.com/hisdocs/his-docs-api/internal/service"
	"github.com/hisdocs/his-docs-api/pkg/cache"
	"github.com/hisdocs/his-docs-api/pkg/config"
	"github.com/hisdocs/his-docs-api/pkg/database"
	"github.com/hisdocs/his-docs-api/pkg/logger"
	corsmiddleware "github.com/hisdocs/his-docs-api/pkg/middleware/cors"
	reqidmiddleware "github.com/hisdocs/his-docs-api/pkg/middleware/requestid"
	"github.com/hisdocs/his-docs-api/pkg/storage"
)

// @title HIS Docs API
// @version 1.0.0
// @description Interface documentation management backend for hospital HIS integrations
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	uploads, err := storage.NewLocalStorage(cfg.Uploads.BaseDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}

	validate := validator.New()
	metricsService := service.NewMetricsService()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	interfaceRepo := repository.NewInterfaceRepository(db)
	parameterRepo := repository.NewParameterRepository(db)
	dictionaryRepo := repository.NewDictionaryRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	faqRepo := repository.NewFAQRepository(db)

	// The search cache is optional; a missing redis only disables it.
	var cacheService *service.CacheService
	if cfg.Search.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, search cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Search.CacheTTL, logr, true)
		}
	}

	uploadCfg := service.UploadConfig{
		MaxFileSizeBytes: cfg.Uploads.MaxFileSizeBytes,
		PublicPrefix:     cfg.Uploads.PublicPrefix,
		Metrics:          metricsService,
	}

	// Services.
	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	projectService := service.NewProjectService(projectRepo, uploads, validate, logr, uploadCfg)
	interfaceService := service.NewInterfaceService(interfaceRepo, parameterRepo, projectRepo, cacheService, validate, logr)
	parameterService := service.NewParameterService(parameterRepo, interfaceRepo, validate, logr)
	dictionaryService := service.NewDictionaryService(dictionaryRepo, projectRepo, validate, logr)
	documentService := service.NewDocumentService(documentRepo, uploads, validate, logr, uploadCfg)
	faqService := service.NewFAQService(faqRepo, uploads, validate, logr, uploadCfg)
	exportService := service.NewExportService(interfaceRepo, parameterRepo, dictionaryRepo, nil, nil, logr)

	// Handlers.
	authHandler := handler.NewAuthHandler(authService)
	projectHandler := handler.NewProjectHandler(projectService)
	interfaceHandler := handler.NewInterfaceHandler(interfaceService)
	parameterHandler := handler.NewParameterHandler(parameterService)
	dictionaryHandler := handler.NewDictionaryHandler(dictionaryService)
	documentHandler := handler.NewDocumentHandler(documentService)
	faqHandler := handler.NewFAQHandler(faqService)
	exportHandler := handler.NewExportHandler(exportService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Uploaded attachments are served statically under the public prefix.
	r.Static(cfg.Uploads.PublicPrefix, uploads.BaseDir())

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.JWT(authService), authHandler.Me)
	}

	protected := api.Group("")
	protected.Use(middleware.JWT(authService))
	{
		protected.GET("/projects", projectHandler.List)
		protected.GET("/projects/:id", projectHandler.Get)
		protected.POST("/projects", projectHandler.Create)
		protected.PUT("/projects/:id", projectHandler.Update)
		protected.DELETE("/projects/:id", projectHandler.Delete)
		protected.POST("/projects/:id/attachments", projectHandler.UploadAttachment)
		protected.DELETE("/projects/:id/attachments/:storedFilename", projectHandler.DeleteAttachment)

		protected.GET("/interfaces", interfaceHandler.List)
		protected.POST("/interfaces/search", interfaceHandler.Search)
		protected.GET("/interfaces/:id", interfaceHandler.Get)
		protected.POST("/interfaces", interfaceHandler.Create)
		protected.PUT("/interfaces/:id", interfaceHandler.Update)
		protected.DELETE("/interfaces/:id", interfaceHandler.Delete)

		protected.GET("/interfaces/:id/parameters", parameterHandler.List)
		protected.POST("/interfaces/:id/parameters", parameterHandler.Create)
		protected.POST("/interfaces/:id/parameters/import/preview", parameterHandler.ImportPreview)
		protected.POST("/interfaces/:id/parameters/import", parameterHandler.ImportCommit)
		protected.GET("/parameters/:id", parameterHandler.Get)
		protected.PUT("/parameters/:id", parameterHandler.Update)
		protected.DELETE("/parameters/:id", parameterHandler.Delete)

		protected.GET("/dictionaries", dictionaryHandler.List)
		protected.GET("/dictionaries/:id", dictionaryHandler.Get)
		protected.POST("/dictionaries", dictionaryHandler.Create)
		protected.PUT("/dictionaries/:id", dictionaryHandler.Update)
		protected.DELETE("/dictionaries/:id", dictionaryHandler.Delete)
		protected.GET("/dictionaries/:id/values", dictionaryHandler.ListValues)
		protected.POST("/dictionaries/:id/values", dictionaryHandler.AddValue)
		protected.DELETE("/dictionaries/:id/values/:valueId", dictionaryHandler.DeleteValue)

		protected.GET("/documents", documentHandler.List)
		protected.GET("/documents/:id", documentHandler.Get)
		protected.POST("/documents", documentHandler.Create)
		protected.PUT("/documents/:id", documentHandler.Update)
		protected.DELETE("/documents/:id", documentHandler.Delete)
		protected.POST("/documents/:id/attachments", documentHandler.UploadAttachment)
		protected.DELETE("/documents/:id/attachments/:storedFilename", documentHandler.DeleteAttachment)

		protected.GET("/faqs", faqHandler.List)
		protected.GET("/faqs/:id", faqHandler.Get)
		protected.POST("/faqs", faqHandler.Create)
		protected.PUT("/faqs/:id", faqHandler.Update)
		protected.DELETE("/faqs/:id", faqHandler.Delete)
		protected.POST("/faqs/:id/attachments", faqHandler.UploadAttachment)
		protected.DELETE("/faqs/:id/attachments/:storedFilename", faqHandler.DeleteAttachment)

		protected.GET("/exports/interfaces", exportHandler.Catalogue)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
