package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/domain/models"
	"github.com/oumarbarry/coqdor/internal/server/middleware"
	"github.com/oumarbarry/coqdor/internal/service/roosters"
)

// RoosterHandler exposes the bird registry and the breed registry endpoints.
type RoosterHandler struct {
	svc    *roosters.Service
	logger *zap.Logger
}

// NewRoosterHandler constructs the HTTP handler adapter.
func NewRoosterHandler(svc *roosters.Service, logger *zap.Logger) *RoosterHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoosterHandler{svc: svc, logger: logger}
}

// List returns every bird.
func (h *RoosterHandler) List(c *gin.Context) {
	birds, err := h.svc.List(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, birds)
}

// Get returns one bird by id.
func (h *RoosterHandler) Get(c *gin.Context) {
	bird, err := h.svc.GetByID(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, bird)
}

// Create registers a bird.
func (h *RoosterHandler) Create(c *gin.Context) {
	var input models.CreateRoosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	bird, err := h.svc.Create(c.Request.Context(), middleware.SessionFrom(c), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, bird)
}

// Update applies a partial update to one bird.
func (h *RoosterHandler) Update(c *gin.Context) {
	var input models.UpdateRoosterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	bird, err := h.svc.Update(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, bird)
}

// Delete removes one bird.
func (h *RoosterHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}

// ListBreeds returns the breed registry.
func (h *RoosterHandler) ListBreeds(c *gin.Context) {
	breeds, err := h.svc.ListBreeds(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, breeds)
}

type createBreedRequest struct {
	Name        string `json:"name"`
	Origin      string `json:"origin"`
	Description string `json:"description"`
}

// CreateBreed adds a breed registry entry.
func (h *RoosterHandler) CreateBreed(c *gin.Context) {
	var req createBreedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	breed, err := h.svc.CreateBreed(c.Request.Context(), middleware.SessionFrom(c), req.Name, req.Origin, req.Description)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, breed)
}

// DeleteBreed removes a breed registry entry when no bird references it.
func (h *RoosterHandler) DeleteBreed(c *gin.Context) {
	if err := h.svc.DeleteBreed(c.Request.Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
