package http

import (
	"context"
	"net/http"
	"time"

	"github.com/jmehdipour/phone-canon/internal/config"
	"github.com/jmehdipour/phone-canon/internal/http/middleware"
	"github.com/jmehdipour/phone-canon/internal/metrics"
	"github.com/jmehdipour/phone-canon/internal/repository"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps are the collaborators of the HTTP server.
type Deps struct {
	Clients    repository.ClientsRepository
	Contacts   ContactStore
	CHContacts repository.CHContactsRepository
	Redis      *redis.Client
	Logger     *zap.Logger
}

type Server struct {
	e   *echo.Echo
	log *zap.Logger
}

func NewServer(cfg config.Config, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// phone utilities are stateless and public
	defaultCode := cfg.Phone.DefaultCountryCode
	ph := e.Group("/v1/phone")
	ph.POST("/normalize", normalizeHandler(defaultCode))
	ph.POST("/compare", compareHandler(defaultCode))
	ph.GET("/countries", countriesHandler)

	// middlewares
	authMW := middleware.APIKeyMiddleware(deps.Clients)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          deps.Redis,
		DefaultRPS:     cfg.RateLimit.RPS,
		KeyPrefix:      "rl:client:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	v1 := e.Group("/v1", authMW, rlMW)
	v1.POST("/contacts", saveContactHandler(deps.Contacts))
	v1.GET("/contacts/lookup", lookupContactHandler(deps.Contacts))
	v1.GET("/reports/contacts", listContactsHandler(deps.CHContacts))

	l := deps.Logger
	if l == nil {
		l = zap.NewNop()
	}
	return &Server{e: e, log: l}
}

func (s *Server) Start(addr string) error {
	s.log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

// ServeHTTP lets the server be driven by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.e.ServeHTTP(w, r) }
