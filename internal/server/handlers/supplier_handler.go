package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/domain/models"
	"github.com/oumarbarry/coqdor/internal/server/middleware"
	"github.com/oumarbarry/coqdor/internal/service/suppliers"
)

// SupplierHandler exposes the supplier directory endpoints.
type SupplierHandler struct {
	svc    *suppliers.Service
	logger *zap.Logger
}

// NewSupplierHandler constructs the HTTP handler adapter.
func NewSupplierHandler(svc *suppliers.Service, logger *zap.Logger) *SupplierHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierHandler{svc: svc, logger: logger}
}

// List returns every supplier with derived item counts.
func (h *SupplierHandler) List(c *gin.Context) {
	directory, err := h.svc.List(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, directory)
}

// Get returns one supplier by id.
func (h *SupplierHandler) Get(c *gin.Context) {
	supplier, err := h.svc.GetByID(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, supplier)
}

// Create registers a supplier.
func (h *SupplierHandler) Create(c *gin.Context) {
	var input models.CreateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	supplier, err := h.svc.Create(c.Request.Context(), middleware.SessionFrom(c), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, supplier)
}

// Update applies a partial update to one supplier.
func (h *SupplierHandler) Update(c *gin.Context) {
	var input models.UpdateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	supplier, err := h.svc.Update(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, supplier)
}

// Delete removes one supplier.
func (h *SupplierHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
