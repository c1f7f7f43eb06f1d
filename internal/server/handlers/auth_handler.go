package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
	"github.com/oumarbarry/coqdor/internal/server/middleware"
	"github.com/oumarbarry/coqdor/pkg/clients/identity"
)

// AuthHandler exposes login, logout and the current-session endpoint.
type AuthHandler struct {
	client identity.Client
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(client identity.Client, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{client: client, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(c, h.logger, apperrors.New(apperrors.CodeInvalidRequest, "email and password are required"))
		return
	}

	token, sess, err := h.client.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, 0, "/", "", false, true)

	h.logger.Info("user logged in", zap.String("uid", sess.UID))
	respondData(c, http.StatusOK, sess)
}

// Logout revokes the session upstream and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookie)
	if err == nil && token != "" {
		if err := h.client.Logout(c.Request.Context(), token); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	respondData(c, http.StatusOK, gin.H{"loggedOut": true})
}

// Me returns the resolved identity of the caller.
func (h *AuthHandler) Me(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	if sess == nil {
		respondError(c, h.logger, apperrors.New(apperrors.CodeUnauthenticated, "authentication required"))
		return
	}
	respondData(c, http.StatusOK, sess)
}
