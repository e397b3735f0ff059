package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// gzipWriter decides on the first write whether the response is worth
// compressing, since the content type is not known before the handler runs.
type gzipWriter struct {
	gin.ResponseWriter
	config  CompressConfig
	writer  *gzip.Writer
	decided bool
}

func (g *gzipWriter) decide() {
	if g.decided {
		return
	}
	g.decided = true

	h := g.ResponseWriter.Header()
	if h.Get("Content-Encoding") != "" || g.ResponseWriter.Status() == http.StatusNoContent {
		return
	}
	contentType := h.Get("Content-Type")
	for _, t := range g.config.Types {
		if strings.Contains(contentType, t) {
			gz, err := gzip.NewWriterLevel(g.ResponseWriter, g.config.Level)
			if err != nil {
				return
			}
			g.writer = gz
			h.Set("Content-Encoding", "gzip")
			h.Add("Vary", "Accept-Encoding")
			h.Del("Content-Length")
			return
		}
	}
}

func (g *gzipWriter) WriteHeader(code int) {
	g.ResponseWriter.WriteHeader(code)
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	g.decide()
	if g.writer == nil {
		return g.ResponseWriter.Write(data)
	}
	return g.writer.Write(data)
}

func (g *gzipWriter) WriteString(s string) (int, error) {
	return g.Write([]byte(s))
}

func (g *gzipWriter) close() {
	if g.writer != nil {
		_ = g.writer.Close()
	}
}

type CompressConfig struct {
	Level int
	Types []string
	Skip  []string
}

func DefaultCompressConfig() CompressConfig {
	return CompressConfig{
		Level: gzip.DefaultCompression,
		Types: []string{
			"text/css",
			"text/html",
			"text/plain",
		},
		Skip: []string{
			"/api",
			"/health",
			"/metrics",
		},
	}
}

// Compress gzips rendered pages and stylesheets. Proxied API traffic is left
// alone.
func Compress(config CompressConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range config.Skip {
			if strings.HasPrefix(c.Request.URL.Path, path) {
				c.Next()
				return
			}
		}

		if !strings.Contains(c.Request.Header.Get("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		gw := &gzipWriter{ResponseWriter: c.Writer, config: config}
		c.Writer = gw
		defer gw.close()

		c.Next()
	}
}
