package handler

import (
	"net/http"

	syncapp "github.com/chainsync/backend/internal/application/sync"
	"github.com/chainsync/backend/internal/domain/shared"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
	"github.com/chainsync/backend/internal/infrastructure/cache"
	"github.com/chainsync/backend/internal/infrastructure/config"
	"github.com/chainsync/backend/internal/infrastructure/logger"
	"github.com/chainsync/backend/internal/infrastructure/record"
	"github.com/chainsync/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader carries the ERP's batch replay guard
const IdempotencyKeyHeader = "Idempotency-Key"

// BatchRequest is the ERP's inbound batch envelope. Total must equal the
// number of records or the batch is rejected before any work starts.
type BatchRequest struct {
	Total   int             `json:"total" binding:"min=0"`
	Records []record.Record `json:"records"`
}

// BatchResponse is the ledger returned for one accepted batch
type BatchResponse struct {
	SyncLogID string                 `json:"sync_log_id"`
	Imported  int                    `json:"imported"`
	Failed    int                    `json:"failed"`
	Results   []syncdom.RecordResult `json:"results"`
}

// SyncHandler serves the inbound batch endpoint
type SyncHandler struct {
	BaseHandler
	engine      *syncapp.Engine
	idempotency cache.IdempotencyStore
	cfg         *config.BranchConfig
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(engine *syncapp.Engine, idempotency cache.IdempotencyStore, cfg *config.BranchConfig) *SyncHandler {
	return &SyncHandler{engine: engine, idempotency: idempotency, cfg: cfg}
}

// RegisterRoutes registers sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sync/:entity", h.RunBatch)
}

// RunBatch handles POST /api/v1/sync/:entity
func (h *SyncHandler) RunBatch(c *gin.Context) {
	entityType := syncdom.EntityType(c.Param("entity"))
	if !entityType.IsValid() {
		h.BadRequest(c, "unsupported entity type: "+c.Param("entity"))
		return
	}

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "invalid batch payload: "+err.Error())
		return
	}

	key := c.GetHeader(IdempotencyKeyHeader)
	if key != "" {
		fresh, err := h.idempotency.Claim(c.Request.Context(), string(entityType)+":"+key, h.cfg.IdempotencyTTL)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if !fresh {
			h.Conflict(c, dto.ErrCodeDuplicate, "batch with this idempotency key was already accepted")
			return
		}
	}

	result, log, err := h.engine.RunBatch(c.Request.Context(), entityType, req.Total, req.Records)
	if err != nil {
		// Nothing was committed, so a retry with the same key must be allowed.
		if key != "" {
			if relErr := h.idempotency.Release(c.Request.Context(), string(entityType)+":"+key); relErr != nil {
				logger.GetGinLogger(c).Warn("could not release idempotency key", zap.Error(relErr))
			}
		}
		h.HandleError(c, err)
		return
	}

	resp := BatchResponse{
		SyncLogID: log.ID.String(),
		Imported:  result.Imported,
		Failed:    result.Failed,
		Results:   result.Results,
	}

	// A batch where every record failed is reported as a client error, but
	// the full ledger still goes back so the ERP can see each reason.
	if result.AllFailed() {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Data:    resp,
			Error: &dto.ErrorInfo{
				Code:      shared.CodeValidation,
				Message:   "all records in the batch failed",
				RequestID: getRequestID(c),
			},
		})
		return
	}
	h.Success(c, resp)
}
