package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/domain/models"
	"github.com/oumarbarry/coqdor/internal/server/middleware"
	"github.com/oumarbarry/coqdor/internal/service/reviews"
)

// ReviewHandler exposes the public review endpoints and the moderation queue.
type ReviewHandler struct {
	svc    *reviews.Service
	logger *zap.Logger
}

// NewReviewHandler constructs the HTTP handler adapter.
func NewReviewHandler(svc *reviews.Service, logger *zap.Logger) *ReviewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewHandler{svc: svc, logger: logger}
}

// ListPublic returns approved reviews; no session required.
func (h *ReviewHandler) ListPublic(c *gin.Context) {
	approved, err := h.svc.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, approved)
}

// Submit accepts feedback from the public site.
func (h *ReviewHandler) Submit(c *gin.Context) {
	var input models.SubmitReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	review, err := h.svc.Submit(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, review)
}

// ListAll returns the full moderation queue, pending reviews included.
func (h *ReviewHandler) ListAll(c *gin.Context) {
	queue, err := h.svc.ListAll(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, queue)
}

// Approve makes a review visible on the public site.
func (h *ReviewHandler) Approve(c *gin.Context) {
	review, err := h.svc.Approve(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, review)
}

// Delete removes a review outright.
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"deleted": true})
}
