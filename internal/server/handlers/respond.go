package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, successEnvelope{Success: true, Data: data})
}

// respondError translates an error into the response envelope. Typed errors
// keep their code and caller-facing message; anything untyped becomes a
// generic 500 and only the log carries the detail.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	typed := apperrors.As(err)
	if typed == nil {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorEnvelope{
			Error: errorBody{Code: apperrors.CodeInternal, Message: "internal server error"},
		})
		return
	}

	status := apperrors.HTTPStatus(typed.Code())
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("code", string(typed.Code())),
			zap.Error(err))
	}

	c.JSON(status, errorEnvelope{
		Error: errorBody{Code: typed.Code(), Message: typed.Message()},
	})
}

func respondBindError(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusBadRequest, errorEnvelope{
		Error: errorBody{Code: apperrors.CodeInvalidRequest, Message: "invalid request body"},
	})
}
