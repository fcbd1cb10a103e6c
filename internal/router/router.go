package router // package router defines how HTTP routes are registered for the API

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/localrot/internal/config"
	"github.com/iliyamo/localrot/internal/handler"
	"github.com/iliyamo/localrot/internal/middleware"
)

// WebhookPath is exempt from rate limiting.
const WebhookPath = "/api/paypal/webhook"

// Handlers groups everything the API routes dispatch to.
type Handlers struct {
	Auth         *handler.AuthHandler
	Reservations *handler.ReservationHandler
	Payments     *handler.PaymentHandler
	Admin        *handler.AdminHandler
}

// Options carries the settings that shape the middleware stack.  A nil
// Redis client disables rate limiting and caching.
type Options struct {
	JWTSecret string
	PublicDir string
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig
	Redis     *redis.Client
}

// New builds a ready-to-serve Echo instance.
func New(h Handlers, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit("1M"))

	RegisterRoutes(e, opts.PublicDir)
	api := e.Group("/api", middleware.NewTokenBucket(opts.RateLimit, opts.Redis, WebhookPath))
	RegisterAuth(api, h.Auth, opts.JWTSecret)
	RegisterReservations(api, h.Reservations)
	RegisterPayments(api, h.Payments)
	RegisterAdmin(api, h.Admin, middleware.NewRedisCache(opts.Cache, opts.Redis))
	return e
}

// RegisterRoutes registers the health check and the static front end.
// GET / serves localrot.html from publicDir; other files under publicDir
// are served by path.
func RegisterRoutes(e *echo.Echo, publicDir string) {
	e.GET("/healthz", handler.Health)
	if publicDir == "" {
		return
	}
	e.GET("/", func(c echo.Context) error {
		return c.File(filepath.Join(publicDir, "localrot.html"))
	})
	e.Use(echomw.StaticWithConfig(echomw.StaticConfig{Root: publicDir}))
}

// RegisterAuth mounts register/login and the token-protected /me.
func RegisterAuth(g *echo.Group, a *handler.AuthHandler, jwtSecret string) {
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}

func RegisterReservations(g *echo.Group, r *handler.ReservationHandler) {
	g.POST("/reserve", r.Reserve)
	g.GET("/reservations/:username", r.ListByUsername)
}

func RegisterPayments(g *echo.Group, p *handler.PaymentHandler) {
	g.POST("/payment/create", p.Create)
	g.POST("/paypal/webhook", p.Webhook)
}

// RegisterAdmin mounts the stats endpoint behind the response cache.
func RegisterAdmin(g *echo.Group, a *handler.AdminHandler, cache echo.MiddlewareFunc) {
	g.GET("/admin/stats", a.GetStats, cache)
}
