// Package proxy forwards /api calls to the backend so browser code can
// reach it on the console's own origin.
package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	prefix string
	proxy  *httputil.ReverseProxy
}

// NewHandler proxies prefix/* to target with the prefix removed, so
// /api/users/ reaches <target>/users/.
func NewHandler(prefix string, target *url.URL) *Handler {
	prefix = strings.TrimRight(prefix, "/")
	rp := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.Out.URL.Path = joinPath(target.Path, strings.TrimPrefix(r.In.URL.Path, prefix))
			r.Out.URL.RawPath = ""
			r.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Ctx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("api proxy failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"detail":"backend unavailable"}`))
		},
	}
	return &Handler{prefix: prefix, proxy: rp}
}

func joinPath(base, rest string) string {
	if rest == "" {
		rest = "/"
	}
	return strings.TrimRight(base, "/") + rest
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.Any("/*path", h.Forward)
}

func (h *Handler) Prefix() string {
	return h.prefix
}

func (h *Handler) Forward(c *gin.Context) {
	h.proxy.ServeHTTP(c.Writer, c.Request)
}
