package router

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jwalitptl/hospital-console/internal/config"
	"github.com/jwalitptl/hospital-console/internal/handler"
	"github.com/jwalitptl/hospital-console/internal/handler/auth"
	"github.com/jwalitptl/hospital-console/internal/handler/health"
	promhandler "github.com/jwalitptl/hospital-console/internal/handler/prometheus"
	"github.com/jwalitptl/hospital-console/internal/handler/proxy"
	"github.com/jwalitptl/hospital-console/internal/handler/screens"
	"github.com/jwalitptl/hospital-console/internal/middleware"
	"github.com/jwalitptl/hospital-console/internal/screen"
	"github.com/jwalitptl/hospital-console/internal/view"
	"github.com/jwalitptl/hospital-console/pkg/metrics"
)

const maxBodyBytes = 1 << 20

// Sessions is what the router needs from the session store: the gate
// reads tokens and the handlers manage the session.
type Sessions interface {
	handler.Sessions
	middleware.TokenReader
}

type Deps struct {
	Config     *config.Config
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
	Sessions   Sessions
	Workspaces handler.Workspaces
	Auth       auth.Authenticator
	Backend    *url.URL
	Checks     map[string]health.Check
}

// New wires every route. Everything outside the gate's public prefixes
// needs a session token.
func New(d Deps) (*gin.Engine, error) {
	cfg := d.Config
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to load views: %w", err)
	}

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(d.Metrics),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig(cfg.Session.Secure)),
		middleware.Compress(middleware.DefaultCompressConfig()),
		middleware.SizeLimit(maxBodyBytes),
		middleware.AuthGate(cfg.Gate, d.Sessions),
	)

	static := engine.Group("/static", middleware.Cache(middleware.CacheConfig{MaxAge: 3600}))
	static.StaticFS("/", http.FS(view.Static()))

	health.NewHandler(d.Checks).RegisterRoutes(engine)
	promhandler.New(d.Gatherer).RegisterRoutes(engine)

	api := engine.Group("/api", middleware.CORS(cfg.CORS.AllowOrigins))
	proxy.NewHandler("/api", d.Backend).RegisterRoutes(api)

	pages := engine.Group("", middleware.Cache(middleware.NoStore))

	authH := auth.NewHandler(d.Auth, d.Sessions, d.Workspaces, d.Metrics.LoginAttempts, auth.Config{
		LoginPath: cfg.Gate.LoginPath,
		HomePath:  cfg.Gate.HomePath,
	})
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:     cfg.RateLimit.LoginRPS,
		Burst:   cfg.RateLimit.LoginBurst,
		OnLimit: authH.Throttled,
	})
	authH.RegisterRoutes(pages, limiter.RateLimit())

	screens.NewHandler(d.Sessions, d.Workspaces, cfg.Gate.LoginPath, screen.Catalog()).RegisterRoutes(pages)

	return engine, nil
}
