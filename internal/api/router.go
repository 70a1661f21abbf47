package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/anthonycdp/autovision-project-sub001/docs"
	"github.com/anthonycdp/autovision-project-sub001/internal/api/handler"
	"github.com/anthonycdp/autovision-project-sub001/internal/api/middleware"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/domain"
	"github.com/anthonycdp/autovision-project-sub001/internal/core/service"
	"github.com/anthonycdp/autovision-project-sub001/internal/infrastructure/config"
	mongodb "github.com/anthonycdp/autovision-project-sub001/internal/infrastructure/db/mongo"
	redisdb "github.com/anthonycdp/autovision-project-sub001/internal/infrastructure/db/redis"
	"github.com/anthonycdp/autovision-project-sub001/internal/infrastructure/queue"
	"github.com/anthonycdp/autovision-project-sub001/internal/pkg/hash"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the activity dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("autovision"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	vehicleRepo := mongodb.NewVehicleRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	// --- Activity trail (async, best-effort) ---
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityRepo, log)
	activityService := service.NewActivityService(dispatcher, activityRepo, log)

	// --- Services ---
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	hasher := hash.New(cfg.BcryptCost)
	authService := service.NewAuthService(userRepo, tokenService, hasher, activityService, log)
	vehicleService := service.NewVehicleService(vehicleRepo, activityService, log)
	statsService := service.NewStatsService(vehicleRepo, redisdb.NewStatsCache(rdb), log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	vehicleHandler := handler.NewVehicleHandler(vehicleService)
	activityHandler := handler.NewActivityHandler(activityService)
	statsHandler := handler.NewStatsHandler(statsService)

	authRequired := middleware.Auth(tokenService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.GET("/auth/me", authHandler.Me, authRequired)

	// --- Vehicle routes ---
	v1 := e.Group("/v1", authRequired)
	v1.GET("/vehicles", vehicleHandler.List)
	v1.POST("/vehicles", vehicleHandler.Create)
	v1.GET("/vehicles/:id", vehicleHandler.Get)
	v1.PATCH("/vehicles/:id", vehicleHandler.Update)
	v1.POST("/vehicles/:id/request-approval", vehicleHandler.RequestApproval)
	v1.PATCH("/vehicles/:id/approval", vehicleHandler.SetApproval, adminOnly)

	// --- Activity trail ---
	v1.GET("/activity/users/:id", activityHandler.ListByUser)
	v1.GET("/activity/vehicles/:id", activityHandler.ListByVehicle)

	// --- Dashboard ---
	v1.GET("/stats/sales", statsHandler.SalesSummary)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher
}
