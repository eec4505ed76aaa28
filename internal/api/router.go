package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/edu-crud/user-records-api/docs"
	"github.com/edu-crud/user-records-api/internal/api/handler"
	"github.com/edu-crud/user-records-api/internal/api/middleware"
	"github.com/edu-crud/user-records-api/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Users  ports.UserService
	DB     handler.Pinger
	Logger zerolog.Logger

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			deps.Logger.Error().Err(err).Bytes("stack", stack).Msg("panic recovered")
			return err
		},
	}))
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "userstore",
		Subsystem:  "http",
		Registerer: deps.Registerer,
	}))

	// --- Handlers ---
	users := handler.NewUserHandler(deps.Users, deps.Logger)
	health := handler.NewHealthHandler(deps.DB, deps.Logger)

	api := e.Group("/api")
	api.GET("/users", users.List)
	api.GET("/users/:id", users.Get)
	api.POST("/users", users.Create)
	api.PUT("/users/:id", users.Update)
	api.DELETE("/users/:id", users.Delete)

	// Credentials in the query string; kept for demonstration.
	api.GET("/users-insecure/create", users.CreateInsecure)

	api.GET("/health", health.Liveness)        // liveness  – is the process alive?
	api.GET("/health/ready", health.Readiness) // readiness – is postgres reachable?

	// --- Operational ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.Gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
