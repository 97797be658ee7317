package handler

import (
	"net/http"

	syncapp "github.com/chainsync/backend/internal/application/sync"
	"github.com/chainsync/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BranchHandler serves the branch endpoint registry
type BranchHandler struct {
	BaseHandler
	branches *syncapp.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branches *syncapp.BranchService) *BranchHandler {
	return &BranchHandler{branches: branches}
}

// RegisterRoutes registers branch routes
func (h *BranchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/branches")
	group.POST("", h.Register)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.POST("/:id/enable", h.Enable)
	group.POST("/:id/disable", h.Disable)
	group.DELETE("/:id", h.Remove)
}

type registerBranchRequest struct {
	Code    string `json:"code" binding:"required,branchcode,max=50"`
	Name    string `json:"name" binding:"required,max=200"`
	BaseURL string `json:"base_url" binding:"required,url"`
	Token   string `json:"token" binding:"required"`
}

type updateBranchRequest struct {
	Name    string `json:"name" binding:"omitempty,max=200"`
	BaseURL string `json:"base_url" binding:"omitempty,url"`
	Token   string `json:"token"`
}

// Register handles POST /api/v1/branches
func (h *BranchHandler) Register(c *gin.Context) {
	var req registerBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "invalid branch payload: "+err.Error())
		return
	}

	endpoint, err := h.branches.Register(c.Request.Context(), req.Code, req.Name, req.BaseURL, req.Token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, endpoint)
}

// List handles GET /api/v1/branches
func (h *BranchHandler) List(c *gin.Context) {
	endpoints, err := h.branches.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, endpoints)
}

// Get handles GET /api/v1/branches/:id
func (h *BranchHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid branch id")
		return
	}
	endpoint, err := h.branches.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, endpoint)
}

// Update handles PUT /api/v1/branches/:id
func (h *BranchHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid branch id")
		return
	}
	var req updateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "invalid branch payload: "+err.Error())
		return
	}

	endpoint, err := h.branches.Update(c.Request.Context(), id, req.Name, req.BaseURL, req.Token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, endpoint)
}

// Enable handles POST /api/v1/branches/:id/enable
func (h *BranchHandler) Enable(c *gin.Context) {
	h.setEnabled(c, true)
}

// Disable handles POST /api/v1/branches/:id/disable
func (h *BranchHandler) Disable(c *gin.Context) {
	h.setEnabled(c, false)
}

func (h *BranchHandler) setEnabled(c *gin.Context, enabled bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid branch id")
		return
	}
	endpoint, err := h.branches.SetEnabled(c.Request.Context(), id, enabled)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, endpoint)
}

// Remove handles DELETE /api/v1/branches/:id
func (h *BranchHandler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid branch id")
		return
	}
	if err := h.branches.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
