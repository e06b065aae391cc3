package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/famsalud/famsalud/backend/api/internal/models"
)

type EpsService interface {
	List(ctx context.Context) ([]models.EpsProviderSummary, error)
	Get(ctx context.Context, id string) (*models.EpsProvider, error)
}

// EpsHandler serves the public provider catalogue.
type EpsHandler struct {
	svc EpsService
}

func NewEpsHandler(svc EpsService) *EpsHandler { return &EpsHandler{svc: svc} }

func (h *EpsHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/eps-providers")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

func (h *EpsHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EpsHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, p)
}
