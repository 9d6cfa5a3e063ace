package utils

import (
	"log"

	"github.com/gin-gonic/gin"
)

type responseTap struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (t *responseTap) Write(b []byte) (int, error) {
	if status := t.gc.Writer.Status(); status >= 400 {
		log.Printf("debug: %s %s -> %d: %s", t.gc.Request.Method, t.gc.Request.URL.Path, status, b)
	}
	return t.ResponseWriter.Write(b)
}

// DebugResponseLogger mirrors the bodies of failed responses to the log.
// Install it before gzip, or the mirrored bytes come out compressed.
func DebugResponseLogger(c *gin.Context) {
	c.Writer = &responseTap{ResponseWriter: c.Writer, gc: c}
	c.Next()
}
