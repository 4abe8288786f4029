package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheConfig controls the Cache-Control header on view responses.
type CacheConfig struct {
	NoStore bool
	Private bool
	Vary    []string
}

// ClinicalCacheConfig is the default for every data-bearing view: patient
// data must never land in a shared or persistent browser cache.
func ClinicalCacheConfig() CacheConfig {
	return CacheConfig{
		NoStore: true,
		Private: true,
		Vary:    []string{"Cookie"},
	}
}

// Cache sets Cache-Control on responses. Non-GET requests are always
// no-store.
func Cache(config CacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		directives := make([]string, 0, 2)
		if config.Private {
			directives = append(directives, "private")
		}
		if config.NoStore {
			directives = append(directives, "no-store")
		}
		if len(directives) > 0 {
			c.Header("Cache-Control", strings.Join(directives, ", "))
		}
		if len(config.Vary) > 0 {
			c.Header("Vary", strings.Join(config.Vary, ", "))
		}
		c.Next()
	}
}
