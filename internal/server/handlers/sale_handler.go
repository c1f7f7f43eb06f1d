package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/domain/models"
	"github.com/oumarbarry/coqdor/internal/server/middleware"
	"github.com/oumarbarry/coqdor/internal/service/sales"
)

// SaleHandler exposes the sales transaction endpoints.
type SaleHandler struct {
	svc    *sales.Service
	logger *zap.Logger
}

// NewSaleHandler constructs the HTTP handler adapter.
func NewSaleHandler(svc *sales.Service, logger *zap.Logger) *SaleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleHandler{svc: svc, logger: logger}
}

// List returns every transaction, most recent first.
func (h *SaleHandler) List(c *gin.Context) {
	txs, err := h.svc.List(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, txs)
}

// Get returns one transaction by id.
func (h *SaleHandler) Get(c *gin.Context) {
	tx, err := h.svc.GetByID(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, tx)
}

// Create records a sale.
func (h *SaleHandler) Create(c *gin.Context) {
	var input models.CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	tx, err := h.svc.Create(c.Request.Context(), middleware.SessionFrom(c), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, tx)
}

// Update applies a partial update to one transaction.
func (h *SaleHandler) Update(c *gin.Context) {
	var input models.UpdateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	tx, err := h.svc.Update(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, tx)
}

// Delete removes one transaction.
func (h *SaleHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

// Stats returns revenue totals and the month-over-month change.
func (h *SaleHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
