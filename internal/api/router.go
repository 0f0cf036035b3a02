package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/learnly/course-market/internal/api/handler"
	"github.com/learnly/course-market/internal/api/middleware"
	"github.com/learnly/course-market/internal/core/domain"
	"github.com/learnly/course-market/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers.
// Services are interfaces so tests can exchange the Mongo-backed
// implementations for in-memory ones; Mongo and Redis handles are only
// used by the readiness probe and may be nil.
type Dependencies struct {
	Auth      ports.AuthService
	Catalog   ports.CatalogService
	Purchases ports.PurchaseService
	Tokens    ports.TokenService
	Logger    zerolog.Logger
	Mongo     *mongo.Database
	Redis     *redis.Client

	// Metrics overrides the Prometheus registry the HTTP metrics are
	// registered on. Nil means the default registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes
// registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	var metricsMiddleware echo.MiddlewareFunc
	var metricsHandler echo.HandlerFunc
	if deps.Metrics != nil {
		metricsMiddleware = echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "coursemarket",
			Registerer: deps.Metrics,
		})
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Metrics,
		})
	} else {
		metricsMiddleware = echoprometheus.NewMiddleware("coursemarket")
		metricsHandler = echoprometheus.NewHandler()
	}
	e.Use(metricsMiddleware)

	authGate := middleware.Auth(deps.Tokens)

	authHandler := handler.NewAuthHandler(deps.Auth)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	purchaseHandler := handler.NewPurchaseHandler(deps.Catalog, deps.Purchases)

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/ping", healthHandler.Liveness)
	if deps.Mongo != nil {
		readiness := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
		e.GET("/health/ready", readiness.Readiness)
	}
	e.GET("/metrics", metricsHandler)

	// --- Admin routes ---
	admin := e.Group("/admin")
	admin.POST("/signup", authHandler.AdminSignup)
	admin.POST("/login", authHandler.AdminLogin)

	adminCourses := admin.Group("/courses", authGate, middleware.RequireRole(domain.RoleAdmin))
	adminCourses.POST("", catalogHandler.Create)
	adminCourses.GET("", catalogHandler.ListAll)
	adminCourses.GET("/:courseId", catalogHandler.Get)
	adminCourses.PUT("/:courseId", catalogHandler.Update)
	adminCourses.DELETE("/:courseId", catalogHandler.Delete)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/signup", authHandler.UserSignup)
	users.POST("/login", authHandler.UserLogin)

	userGate := []echo.MiddlewareFunc{authGate, middleware.RequireRole(domain.RoleUser)}
	users.GET("/courses", purchaseHandler.ListPublished, userGate...)
	users.POST("/courses/:courseId", purchaseHandler.Purchase, userGate...)
	users.GET("/purchasedCourses", purchaseHandler.ListPurchased, userGate...)

	return e
}
