package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/brightsmile/booking-api/internal/api/handler"
	"github.com/brightsmile/booking-api/internal/api/middleware"
	"github.com/brightsmile/booking-api/internal/core/domain"
	"github.com/brightsmile/booking-api/internal/core/ports"
	"github.com/brightsmile/booking-api/internal/infrastructure/http/handlers"

	_ "github.com/brightsmile/booking-api/docs"
)

// Dependencies are the services and settings the router wires into handlers.
type Dependencies struct {
	Log       zerolog.Logger
	JWTSecret string
	Location  *time.Location

	Auth         ports.AuthService
	TimeSlots    ports.TimeSlotService
	Appointments ports.AppointmentService
	Audit        ports.AuditService

	Readiness   *handlers.HealthDependenciesHandler
	RateLimiter *middleware.RateLimiter

	// Registry receives the HTTP request metrics. Nil means the default
	// Prometheus registry, where the domain metrics also live.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "booking",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	slotHandler := handler.NewTimeSlotHandler(deps.TimeSlots, deps.Location)
	apptHandler := handler.NewAppointmentHandler(deps.Appointments, deps.Audit, deps.Location)

	authMiddleware := middleware.Auth(deps.JWTSecret)
	dentistOnly := middleware.RBAC(domain.RoleDentist)
	patientOnly := middleware.RBAC(domain.RolePatient)

	// --- Auth routes ---
	auth := e.Group("/auth")
	if deps.RateLimiter != nil {
		auth.Use(middleware.RateLimit(deps.RateLimiter))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Public ---
	e.GET("/v1/time-slots", slotHandler.ListAvailable)

	// --- Authenticated ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/me", authHandler.Me)

	v1.POST("/time-slots", slotHandler.Create, dentistOnly)
	v1.DELETE("/time-slots/:id", slotHandler.Delete, dentistOnly)
	v1.GET("/dentist/time-slots", slotHandler.ListMine, dentistOnly)
	v1.GET("/dentist/appointments", apptHandler.ListForDentist, dentistOnly)

	v1.POST("/appointments", apptHandler.Book, patientOnly)
	v1.GET("/patient/appointments", apptHandler.ListForPatient, patientOnly)
	v1.POST("/appointments/:id/confirm", apptHandler.Confirm, dentistOnly)
	v1.POST("/appointments/:id/reject", apptHandler.Reject, dentistOnly)
	v1.POST("/appointments/:id/cancel", apptHandler.Cancel) // patient or dentist, checked by the service
	v1.GET("/appointments/:id/events", apptHandler.Events)

	// --- Health probes and tooling (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if deps.Readiness != nil {
		e.GET("/health/ready", deps.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
