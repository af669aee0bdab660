package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cv-forge/internal/shared/telemetry"
)

// Context keys handlers set to enrich the access log.
const (
	LangKey    = "cvLang"
	FormatKey  = "cvFormat"
	BuildIDKey = "buildId"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"bytes":       c.Writer.Size(),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		addCVFields(c, fields)
		telemetry.Info("request.complete", fields)
	}
}

var cvFields = map[string]string{LangKey: "lang", FormatKey: "format", BuildIDKey: "build_id"}

// addCVFields copies the handler-set lang/format/build id into fields.
func addCVFields(c *gin.Context, fields map[string]any) {
	for key, field := range cvFields {
		if v := c.GetString(key); v != "" {
			fields[field] = v
		}
	}
}
