package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iramedia/work-reports/internal/api/handler"
	"github.com/iramedia/work-reports/internal/api/middleware"
	"github.com/iramedia/work-reports/internal/core/domain"
	"github.com/iramedia/work-reports/internal/core/ports"
	"github.com/iramedia/work-reports/internal/core/service"
	"github.com/iramedia/work-reports/internal/infrastructure/config"
	mongodb "github.com/iramedia/work-reports/internal/infrastructure/db/mongo"
	redisdb "github.com/iramedia/work-reports/internal/infrastructure/db/redis"
	"github.com/iramedia/work-reports/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router needs to assemble the service
// graph. Files is injected rather than built here so tests can swap it.
type Dependencies struct {
	DB    *mongo.Database
	Redis *redis.Client
	Files ports.FileStore
	Cfg   *config.Config
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("workreports"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	subRepo := mongodb.NewSubmissionRepository(deps.DB)
	sessionStore := redisdb.NewSessionStore(deps.Redis, deps.Cfg.SessionTTL)

	authService := service.NewAuthService(userRepo, sessionStore, deps.Log)
	identityService := service.NewIdentityService(userRepo, deps.Files, deps.Log)
	submissionService := service.NewSubmissionService(subRepo, userRepo, deps.Files, deps.Cfg.MaxUploadBytes, deps.Log)
	adminService := service.NewAdminService(userRepo, subRepo, deps.Log)

	authHandler := handler.NewAuthHandler(authService, identityService, deps.Cfg.CookieSecure, deps.Cfg.SessionTTL)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	adminHandler := handler.NewAdminHandler(adminService, identityService, submissionService)

	auth := middleware.Auth(sessionStore)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout, auth)
	e.GET("/profile", authHandler.Profile, auth)
	e.POST("/profile", authHandler.UpdateProfile, auth)

	// --- Employee routes ---
	e.GET("/dashboard", submissionHandler.Dashboard, auth)
	e.POST("/submit", submissionHandler.Submit, auth, middleware.RBAC(domain.RoleEmployee))
	e.GET("/download/:id", submissionHandler.Download, auth)
	e.PUT("/reports/:id", submissionHandler.UpdateReport, auth)
	e.DELETE("/reports/:id", submissionHandler.DeleteReport, auth)

	// --- Admin routes ---
	admin := e.Group("/admin", auth, middleware.RBAC(domain.RoleAdmin))
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/submissions", adminHandler.ListSubmissions)
	admin.POST("/employees", adminHandler.CreateEmployee)
	admin.PUT("/employees/:id", adminHandler.UpdateEmployee)
	admin.DELETE("/employees/:id", adminHandler.DeleteEmployee)
	admin.GET("/employees/:id/reports", adminHandler.EmployeeReport)
	admin.GET("/employees/:id/monthly", adminHandler.MonthlyReport)
	admin.GET("/reports/export", adminHandler.ExportCSV)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
