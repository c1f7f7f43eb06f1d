package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
	"github.com/oumarbarry/coqdor/internal/domain/models"
	"github.com/oumarbarry/coqdor/internal/server/middleware"
	"github.com/oumarbarry/coqdor/internal/service/inventory"
)

// InventoryHandler exposes the farm-supply stock endpoints.
type InventoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

// List returns every inventory item.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, items)
}

// Get returns one item by id.
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.svc.GetByID(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, item)
}

// Create registers a new item.
func (h *InventoryHandler) Create(c *gin.Context) {
	var input models.CreateInventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	item, err := h.svc.Create(c.Request.Context(), middleware.SessionFrom(c), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, item)
}

// Update applies a partial update. The raw map keeps the distinction between a
// field sent as null and a field left out of the body.
func (h *InventoryHandler) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBindError(c, h.logger, err)
		return
	}
	if len(patch) == 0 {
		respondError(c, h.logger, apperrors.New(apperrors.CodeInvalidRequest, "patch body must not be empty"))
		return
	}

	item, err := h.svc.Update(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, item)
}

// Delete removes one item.
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

type restockRequest struct {
	Amount *float64 `json:"amount"`
}

// Restock adds stock to one item.
func (h *InventoryHandler) Restock(c *gin.Context) {
	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}
	if req.Amount == nil {
		respondError(c, h.logger, apperrors.New(apperrors.CodeInvalidRestockAmount, "restock amount must be a positive number"))
		return
	}

	item, err := h.svc.Restock(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), *req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, item)
}

type consumeRequest struct {
	Amount *float64 `json:"amount"`
	Reason string   `json:"reason"`
}

// Consume subtracts stock from one item; a reason is mandatory.
func (h *InventoryHandler) Consume(c *gin.Context) {
	var req consumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}
	if req.Amount == nil {
		respondError(c, h.logger, apperrors.New(apperrors.CodeInvalidRequest, "consume amount must be a positive number"))
		return
	}

	item, err := h.svc.Consume(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), *req.Amount, req.Reason)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, item)
}

// Stats returns the freshly recomputed aggregate.
func (h *InventoryHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

// Activity returns the most recent restock and consume records.
func (h *InventoryHandler) Activity(c *gin.Context) {
	activity, err := h.svc.Activity(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, activity)
}
