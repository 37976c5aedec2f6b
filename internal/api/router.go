package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/shivaccounts/accounts-api/docs"
	"github.com/shivaccounts/accounts-api/internal/api/handler"
	"github.com/shivaccounts/accounts-api/internal/api/middleware"
	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
	"github.com/shivaccounts/accounts-api/internal/infrastructure/http/handlers"
)

// Dependencies is everything NewRouter wires into routes.
type Dependencies struct {
	Auth     ports.AuthService
	Tokens   ports.TokenVerifier
	Products ports.ProductService
	Taxes    ports.TaxService
	Contacts ports.ContactService
	Accounts ports.AccountService
	Payments ports.PaymentService

	// Readiness lists the checks behind /health/ready.
	Readiness []handlers.Dependency

	// RequireAuthForResources puts the registries and /create-order behind
	// bearer auth and the admin / invoicing_user roles.
	RequireAuthForResources bool
	CORSAllowOrigins        []string

	// MetricsRegisterer enables request metrics and /metrics when set.
	MetricsRegisterer prometheus.Registerer
	MetricsGatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Binder = handler.NewBinder()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(d.CORSAllowOrigins),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
	}))
	if d.MetricsRegisterer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "http",
			Registerer: d.MetricsRegisterer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: d.MetricsGatherer,
		}))
	}

	// --- Health checks and docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(d.Readiness...).Readiness)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Auth)
	e.POST("/CreateUser", authHandler.CreateUser)
	e.POST("/login", authHandler.Login)
	e.GET("/me", authHandler.Me)

	// --- Registries ---
	var guard []echo.MiddlewareFunc
	if d.RequireAuthForResources {
		guard = []echo.MiddlewareFunc{
			middleware.Auth(d.Tokens),
			middleware.RBAC(domain.RoleAdmin, domain.RoleInvoicingUser),
		}
	}

	products := handler.NewProductHandler(d.Products)
	e.GET("/products", products.List, guard...)
	e.POST("/products", products.Create, guard...)
	e.GET("/products/:id", products.Get, guard...)
	e.PUT("/products/:id", products.Update, guard...)
	e.DELETE("/products/:id", products.Delete, guard...)

	taxes := handler.NewTaxHandler(d.Taxes)
	e.GET("/taxes", taxes.List, guard...)
	e.POST("/taxes", taxes.Create, guard...)
	e.PUT("/taxes/:id", taxes.Update, guard...)
	e.DELETE("/taxes/:id", taxes.ToggleArchived, guard...)

	contacts := handler.NewContactHandler(d.Contacts)
	e.GET("/contacts", contacts.List, guard...)
	e.POST("/contacts", contacts.Create, guard...)
	e.GET("/contacts/:id", contacts.Get, guard...)
	e.PUT("/contacts/:id", contacts.Update, guard...)
	e.DELETE("/contacts/:id", contacts.Delete, guard...)

	accounts := handler.NewAccountHandler(d.Accounts)
	e.GET("/coa", accounts.List, guard...)
	e.GET("/coa/by-type/:type", accounts.ListByType, guard...)
	e.POST("/coa", accounts.Create, guard...)
	e.PUT("/coa/:id", accounts.Update, guard...)
	e.DELETE("/coa/:id", accounts.Delete, guard...)

	payments := handler.NewPaymentHandler(d.Payments)
	e.POST("/create-order", payments.CreateOrder, guard...)

	return e
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// requestLogger emits one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				ev = log.Warn()
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
