package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/famsalud/famsalud/backend/api/internal/apperrors"
)

// uuidParam reads a path parameter that must be a canonical UUID, reporting a
// validation error on the context otherwise.
func uuidParam(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if len(raw) != 36 {
		_ = c.Error(apperrors.Validation("Validation failed (uuid is expected)"))
		return "", false
	}
	if _, err := uuid.Parse(raw); err != nil {
		_ = c.Error(apperrors.Validation("Validation failed (uuid is expected)"))
		return "", false
	}
	return raw, true
}
