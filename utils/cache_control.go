package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// CacheControl returns middleware that sets a blanket cache-control header
// for every response. API responses carry user-specific data, so the default
// is no caching; handlers serving immutable content can override the header
// themselves.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	value := "no-cache"
	if maxAgeSeconds > 0 {
		value = "private, max-age=" + strconv.Itoa(maxAgeSeconds)
	}
	return func(c *gin.Context) {
		c.Header("cache-control", value)
		c.Next()
	}
}
