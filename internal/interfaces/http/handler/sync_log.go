package handler

import (
	"time"

	syncapp "github.com/chainsync/backend/internal/application/sync"
	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SyncLogHandler serves the provenance endpoints
type SyncLogHandler struct {
	BaseHandler
	logs *syncapp.LogService
}

// NewSyncLogHandler creates a new SyncLogHandler
func NewSyncLogHandler(logs *syncapp.LogService) *SyncLogHandler {
	return &SyncLogHandler{logs: logs}
}

// RegisterRoutes registers sync log routes
func (h *SyncLogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sync-logs")
	group.GET("", h.List)
	group.GET("/summary", h.Summary)
	group.GET("/:id", h.Get)
	group.DELETE("/cleanup", h.Cleanup)
}

type syncLogListRequest struct {
	dto.ListRequest
	EntityType string `form:"entity_type"`
	Direction  string `form:"direction"`
	Status     string `form:"status"`
	Since      string `form:"since"`
	Until      string `form:"until"`
}

// List handles GET /api/v1/sync-logs
func (h *SyncLogHandler) List(c *gin.Context) {
	req := syncLogListRequest{ListRequest: dto.DefaultListRequest()}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}

	filter := syncdom.SyncLogFilter{
		EntityType: syncdom.EntityType(req.EntityType),
		Direction:  syncdom.Direction(req.Direction),
		Status:     syncdom.SyncStatus(req.Status),
	}
	if req.Since != "" {
		since, err := time.Parse(time.RFC3339, req.Since)
		if err != nil {
			h.BadRequest(c, "since must be RFC3339")
			return
		}
		filter.Since = &since
	}
	if req.Until != "" {
		until, err := time.Parse(time.RFC3339, req.Until)
		if err != nil {
			h.BadRequest(c, "until must be RFC3339")
			return
		}
		filter.Until = &until
	}

	page := shared.NewFilter()
	page.Page = req.Page
	page.PageSize = req.PageSize

	logs, total, err := h.logs.List(c.Request.Context(), filter, page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, logs, total, page.Page, page.PageSize)
}

// Get handles GET /api/v1/sync-logs/:id
func (h *SyncLogHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid sync log id")
		return
	}
	log, err := h.logs.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, log)
}

// Summary handles GET /api/v1/sync-logs/summary
func (h *SyncLogHandler) Summary(c *gin.Context) {
	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "since must be RFC3339")
			return
		}
		since = &parsed
	}

	summaries, err := h.logs.Summarize(c.Request.Context(), since)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summaries)
}

// Cleanup handles DELETE /api/v1/sync-logs/cleanup
func (h *SyncLogHandler) Cleanup(c *gin.Context) {
	retention := 90 * 24 * time.Hour
	if raw := c.Query("retention"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			h.BadRequest(c, "retention must be a duration, e.g. 720h")
			return
		}
		retention = parsed
	}

	deleted, err := h.logs.Cleanup(c.Request.Context(), retention)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": deleted})
}
