package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type CacheConfig struct {
	MaxAge  int
	Private bool
	NoStore bool
}

// NoStore is used for every page that shows patient or account data.
var NoStore = CacheConfig{NoStore: true}

// Cache sets Cache-Control on GET responses; anything else is never cached.
func Cache(config CacheConfig) gin.HandlerFunc {
	var directives []string
	switch {
	case config.NoStore:
		directives = append(directives, "no-store")
	case config.Private:
		directives = append(directives, "private")
	default:
		directives = append(directives, "public")
	}
	if !config.NoStore && config.MaxAge > 0 {
		directives = append(directives, "max-age="+strconv.Itoa(config.MaxAge))
	}
	value := strings.Join(directives, ", ")

	return func(c *gin.Context) {
		if c.Request.Method != "GET" && c.Request.Method != "HEAD" {
			c.Header("Cache-Control", "no-store")
		} else {
			c.Header("Cache-Control", value)
		}
		c.Next()
	}
}
