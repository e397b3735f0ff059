package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/hospital-console/internal/config"
)

var gateConfig = config.GateConfig{
	LoginPath:      "/login",
	HomePath:       "/",
	PublicPrefixes: []string{"/login", "/register", "/static", "/api"},
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		hasToken bool
		path     string
		want     Decision
	}{
		{"anonymous on a private page", false, "/patients", RedirectToLogin},
		{"anonymous on the home page", false, "/", RedirectToLogin},
		{"anonymous on login", false, "/login", Allow},
		{"anonymous on a public prefix", false, "/static/console.css", Allow},
		{"anonymous on the api", false, "/api/users", Allow},
		{"prefix match is textual", false, "/loginfoo", Allow},
		{"signed in on login", true, "/login", RedirectToHome},
		{"signed in on a private page", true, "/doctor", Allow},
		{"signed in on a public page", true, "/register", Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(gateConfig, tt.hasToken, tt.path))
		})
	}
}

type staticTokens string

func (s staticTokens) Token(*gin.Context) (string, bool) {
	return string(s), s != ""
}

func TestAuthGate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(token staticTokens, path string) *httptest.ResponseRecorder {
		r := gin.New()
		r.Use(AuthGate(gateConfig, token))
		r.GET("/*any", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := serve("", "/billing")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = serve("abc", "/login")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = serve("abc", "/billing")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
