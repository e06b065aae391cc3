package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/famsalud/famsalud/backend/api/internal/family"
	"github.com/famsalud/famsalud/backend/api/internal/models"
	"github.com/famsalud/famsalud/backend/api/pkg/middleware"
)

type FamilyService interface {
	Create(ctx context.Context, userID string, in family.CreateInput) (*models.FamilyMember, error)
	List(ctx context.Context, userID string) ([]models.FamilyMember, error)
	Get(ctx context.Context, id, userID string) (*models.FamilyMember, error)
	Update(ctx context.Context, id, userID string, in family.UpdateInput) (*models.FamilyMember, error)
	Remove(ctx context.Context, id, userID string) error
}

// FamilyHandler exposes the caller's family members. Every route requires a bearer token.
type FamilyHandler struct {
	svc         FamilyService
	requireAuth gin.HandlerFunc
}

func NewFamilyHandler(svc FamilyService, requireAuth gin.HandlerFunc) *FamilyHandler {
	return &FamilyHandler{svc: svc, requireAuth: requireAuth}
}

func (h *FamilyHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/family-members", h.requireAuth)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *FamilyHandler) Create(c *gin.Context) {
	var in family.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	m, err := h.svc.Create(c.Request.Context(), middleware.CurrentUser(c).ID, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *FamilyHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FamilyHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	m, err := h.svc.Get(c.Request.Context(), id, middleware.CurrentUser(c).ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *FamilyHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var in family.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}
	m, err := h.svc.Update(c.Request.Context(), id, middleware.CurrentUser(c).ID, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *FamilyHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Remove(c.Request.Context(), id, middleware.CurrentUser(c).ID); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": family.DeletedMessage})
}
