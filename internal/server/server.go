package server

import (
	"context"
	"net/http"

	"github.com/alya-io/alya/internal/config"
	"github.com/alya-io/alya/internal/handler"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Hooks are the optional lifespan callbacks, run once when the server begins
// serving and once when it stops.
type Hooks struct {
	OnStart func(context.Context)
	OnStop  func(context.Context)
}

// Options carry the optional pieces of server assembly.
type Options struct {
	Hooks     Hooks
	Telemetry *newrelic.Application
}

// Server holds the Echo app and its dependencies.
type Server struct {
	Echo   *echo.Echo
	Config *config.Settings
	log    zerolog.Logger
	hooks  Hooks
}

// New builds the Echo app: panic recovery, request logging, optional
// telemetry, CORS, the routes, the error mapping, and the OpenAPI document.
func New(cfg *config.Settings, log zerolog.Logger, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug || cfg.IsDevelopment()
	e.HTTPErrorHandler = httpErrorHandler(log)

	// RequestLogger sits outside Recover so recovered panics still get a
	// completion log and timing header.
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())
	if opts.Telemetry != nil {
		e.Use(Telemetry(opts.Telemetry))
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{"*"},
	}))

	h := handler.New(cfg)
	e.GET("/", h.Root)
	e.GET("/health", h.Health)

	doc := buildOpenAPI(cfg, e)
	e.GET(cfg.APIV1Prefix+"/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	})

	return &Server{Echo: e, Config: cfg, log: log, hooks: opts.Hooks}
}

// Start runs the OnStart hook and blocks on the listener bound to the
// configured host:port until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	if s.hooks.OnStart != nil {
		s.hooks.OnStart(context.Background())
	}
	return s.Echo.Start(s.Config.Addr())
}

// Shutdown stops the listener gracefully, then runs the OnStop hook.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.Echo.Shutdown(ctx)
	if s.hooks.OnStop != nil {
		s.hooks.OnStop(ctx)
	}
	return err
}
