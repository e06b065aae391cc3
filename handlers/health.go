package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/famsalud/famsalud/backend/api/internal/health"
)

// RegisterHealth mounts the dependency check at <group>/health.
func RegisterHealth(rg *gin.RouterGroup, checker *health.Checker) {
	rg.GET("/health", func(c *gin.Context) {
		report := checker.Check(c.Request.Context())
		c.JSON(report.HTTPStatus(), report)
	})
}

// RegisterLiveness mounts a dependency-free probe at /health on the root engine.
func RegisterLiveness(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
}
