package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-console/internal/config"
)

// Decision is the auth gate's verdict for one request.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToHome
)

func (d Decision) String() string {
	switch d {
	case RedirectToLogin:
		return "RedirectToLogin"
	case RedirectToHome:
		return "RedirectToHome"
	default:
		return "Allow"
	}
}

// Decide looks only at whether a token is present, never at whether it is
// valid. A signed-in user asking for the login page is sent home even
// though the login page is public.
func Decide(cfg config.GateConfig, hasToken bool, path string) Decision {
	if !hasToken {
		if isPublic(cfg.PublicPrefixes, path) {
			return Allow
		}
		return RedirectToLogin
	}
	if path == cfg.LoginPath {
		return RedirectToHome
	}
	return Allow
}

func isPublic(prefixes []string, path string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// TokenReader reports whether the request carries a session token.
type TokenReader interface {
	Token(c *gin.Context) (string, bool)
}

// AuthGate applies Decide to every request.
func AuthGate(cfg config.GateConfig, sessions TokenReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, hasToken := sessions.Token(c)
		switch Decide(cfg, hasToken, c.Request.URL.Path) {
		case RedirectToLogin:
			c.Redirect(http.StatusFound, cfg.LoginPath)
			c.Abort()
		case RedirectToHome:
			c.Redirect(http.StatusFound, cfg.HomePath)
			c.Abort()
		default:
			c.Next()
		}
	}
}
