package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/famsalud/famsalud/backend/api/pkg/logger"
	"github.com/famsalud/famsalud/backend/api/pkg/metrics"
)

// RequestLogger logs one line per request and records its latency.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())

		line := fmt.Sprintf("%s %s %d - %dms", c.Request.Method, c.Request.URL.RequestURI(), status, elapsed.Milliseconds())
		switch {
		case status >= http.StatusInternalServerError:
			logger.Errorf("%s", line)
		case status >= http.StatusBadRequest:
			logger.Warnf("%s", line)
		default:
			logger.Infof("%s", line)
		}
	}
}

// Recovery turns panics into a 500 with the error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		AbortWithError(c, http.StatusInternalServerError, "Internal server error")
	})
}

// CORS sets cross-origin headers and answers preflight requests.
// With a specific origin, credentials are allowed so the refresh cookie can travel.
func CORS(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		h.Set("Access-Control-Expose-Headers", "Content-Length")
		if origin != "*" {
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
