package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-console/internal/handler"
	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/internal/session"
	"github.com/jwalitptl/hospital-console/internal/view"
	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

const (
	msgBadCredentials = "Invalid username or password."
	msgServer         = "Could not connect to the server. Please try again later."
	msgNetwork        = "A network error occurred. Please check your connection and try again."
	msgMissing        = "Please enter your username and password."
	msgThrottled      = "Too many sign-in attempts. Please wait a moment and try again."
)

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

type Config struct {
	LoginPath string
	HomePath  string
}

type Handler struct {
	api        Authenticator
	sessions   handler.Sessions
	workspaces handler.Workspaces
	attempts   *prometheus.CounterVec
	cfg        Config
}

func NewHandler(api Authenticator, sessions handler.Sessions, workspaces handler.Workspaces, attempts *prometheus.CounterVec, cfg Config) *Handler {
	return &Handler{api: api, sessions: sessions, workspaces: workspaces, attempts: attempts, cfg: cfg}
}

// RegisterRoutes mounts the login page. limit guards the credential post.
func (h *Handler) RegisterRoutes(r gin.IRoutes, limit gin.HandlerFunc) {
	r.GET(h.cfg.LoginPath, h.LoginPage)
	r.POST(h.cfg.LoginPath, limit, h.Login)
	r.POST("/logout", h.Logout)
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", view.LoginPage{Title: "Sign in"})
}

// Login never retries; every failure is shown and the user decides.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		h.record("invalid")
		h.render(c, http.StatusBadRequest, req.Username, msgMissing)
		return
	}

	resp, err := h.api.Login(c.Request.Context(), req)
	if err != nil {
		logger := log.Ctx(c.Request.Context())
		switch apperrors.KindOf(err) {
		case apperrors.KindUnauthorized:
			h.record("rejected")
			h.render(c, http.StatusUnauthorized, req.Username, msgBadCredentials)
		case apperrors.KindNetwork:
			h.record("error")
			logger.Warn().Err(err).Msg("login could not reach the backend")
			h.render(c, http.StatusBadGateway, req.Username, msgNetwork)
		default:
			h.record("error")
			logger.Warn().Err(err).Msg("login failed")
			h.render(c, http.StatusBadGateway, req.Username, msgServer)
		}
		return
	}

	sess := session.Session{
		Token: resp.AccessToken,
		Profile: model.Profile{
			Username: req.Username,
			Role:     resp.Role,
			Branch:   resp.Branch,
		},
	}
	if err := h.sessions.Set(c, sess); err != nil {
		h.record("error")
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to store session")
		h.render(c, http.StatusInternalServerError, req.Username, msgServer)
		return
	}

	h.record("success")
	log.Ctx(c.Request.Context()).Info().Str("role", string(resp.Role)).Msg("signed in")
	c.Redirect(http.StatusFound, h.cfg.HomePath)
}

func (h *Handler) Logout(c *gin.Context) {
	handler.EndSession(c, h.sessions, h.workspaces, h.cfg.LoginPath)
}

// Throttled renders the login page for a client over its rate limit.
func (h *Handler) Throttled(c *gin.Context) {
	h.record("throttled")
	h.render(c, http.StatusTooManyRequests, c.PostForm("username"), msgThrottled)
}

func (h *Handler) render(c *gin.Context, status int, username, msg string) {
	c.HTML(status, "login.html", view.LoginPage{Title: "Sign in", Username: username, Error: msg})
}

func (h *Handler) record(outcome string) {
	if h.attempts != nil {
		h.attempts.WithLabelValues(outcome).Inc()
	}
}
