package handler

import (
	"net/http"

	syncapp "github.com/chainsync/backend/internal/application/sync"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/infrastructure/record"
	"github.com/chainsync/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// EntityHandler serves the single-entity read and write endpoints for every
// reconcilable entity type. The path identifier may be any of the type's
// alternate identifiers; resolution follows the same precedence as batches.
type EntityHandler struct {
	BaseHandler
	engine *syncapp.Engine
}

// NewEntityHandler creates a new EntityHandler
func NewEntityHandler(engine *syncapp.Engine) *EntityHandler {
	return &EntityHandler{engine: engine}
}

// RegisterRoutes registers one route set per entity type
func (h *EntityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	for _, entityType := range syncdom.AllEntityTypes {
		group := rg.Group("/" + string(entityType))
		group.GET("/:identifier", h.get(entityType))
		group.PUT("/:identifier", h.update(entityType))
		group.DELETE("/:identifier", h.deactivate(entityType))
	}
}

func (h *EntityHandler) get(entityType syncdom.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := h.engine.GetEntity(c.Request.Context(), entityType, c.Param("identifier"))
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, payload)
	}
}

func (h *EntityHandler) update(entityType syncdom.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rec record.Record
		if err := c.ShouldBindJSON(&rec); err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "invalid entity payload: "+err.Error())
			return
		}

		payload, outcomes, err := h.engine.UpdateEntity(c.Request.Context(), entityType, c.Param("identifier"), rec)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, gin.H{
			"entity":       payload,
			"distribution": outcomes,
		})
	}
}

func (h *EntityHandler) deactivate(entityType syncdom.EntityType) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.engine.DeactivateEntity(c.Request.Context(), entityType, c.Param("identifier")); err != nil {
			h.HandleError(c, err)
			return
		}
		h.NoContent(c)
	}
}
