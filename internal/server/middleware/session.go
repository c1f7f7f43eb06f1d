package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
	"github.com/oumarbarry/coqdor/internal/domain/models"
	"github.com/oumarbarry/coqdor/pkg/clients/identity"
)

// SessionCookie is the name of the opaque session cookie issued at login.
const SessionCookie = "farm_session"

const sessionContextKey = "coqdor.session"

// Session resolves the session cookie against the identity provider and, when
// valid, stores the resolved identity on the request context. Requests without
// a cookie, or with a dead token, proceed anonymously; each handler decides
// whether that is acceptable.
func Session(client identity.Client, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := client.VerifySession(c.Request.Context(), token)
		if err != nil {
			logger.Error("session verification failed", zap.Error(err))
			abortWithError(c, err)
			return
		}
		if sess != nil {
			c.Set(sessionContextKey, sess)
		}

		c.Next()
	}
}

// SessionFrom returns the resolved session for the request, or nil when the
// caller is anonymous.
func SessionFrom(c *gin.Context) *models.Session {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := value.(*models.Session)
	return sess
}

func abortWithError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	message := "internal server error"
	if typed := apperrors.As(err); typed != nil {
		message = typed.Message()
	}

	c.AbortWithStatusJSON(apperrors.HTTPStatus(code), gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}
