package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/restaurantes/restaurant-api/docs"
	"github.com/restaurantes/restaurant-api/internal/api/handler"
	"github.com/restaurantes/restaurant-api/internal/api/middleware"
	"github.com/restaurantes/restaurant-api/internal/core/domain"
	"github.com/restaurantes/restaurant-api/internal/core/ports"
	healthhttp "github.com/restaurantes/restaurant-api/internal/infrastructure/http/handlers"
	"github.com/restaurantes/restaurant-api/pkg/logger"
)

const metricsSubsystem = "restaurants_http"

// Deps carries everything the router needs to wire handlers.
type Deps struct {
	Log         zerolog.Logger
	Auth        ports.AuthService
	Restaurants ports.RestaurantService
	Tokens      ports.TokenVerifier
	// Pingers are reported by /health/ready, keyed by dependency name.
	Pingers map[string]healthhttp.Pinger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(logger.RequestLogger(deps.Log))
	e.Use(prometheusMiddleware(deps.Registry))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Restaurant routes ---
	restaurantHandler := handler.NewRestaurantHandler(deps.Restaurants)
	readers := middleware.Gate(deps.Tokens, domain.RoleAdmin, domain.RoleUser)
	writers := middleware.Gate(deps.Tokens, domain.RoleAdmin)

	e.GET("/restaurants", restaurantHandler.List, readers...)
	e.GET("/restaurants/:id", restaurantHandler.Get, readers...)
	e.POST("/restaurants", restaurantHandler.Create, writers...)
	e.PUT("/restaurants/:id", restaurantHandler.Update, writers...)
	e.DELETE("/restaurants/:id", restaurantHandler.Delete, writers...)

	// --- Health probes (no auth required) ---
	healthHandler := healthhttp.NewHealthHandler()
	healthDepsHandler := healthhttp.NewHealthDependenciesHandler(deps.Pingers)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func prometheusMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	if reg == nil {
		return echoprometheus.NewMiddleware(metricsSubsystem)
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: reg,
	})
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
