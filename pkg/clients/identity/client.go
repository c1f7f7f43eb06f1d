package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/oumarbarry/coqdor/internal/config"
	"github.com/oumarbarry/coqdor/internal/domain/apperrors"
	"github.com/oumarbarry/coqdor/internal/domain/models"
)

// Client exposes the managed identity platform operations the application
// depends on. The core logic never parses tokens itself; it only ever sees
// the resolved uid/roles pair.
type Client interface {
	VerifySession(ctx context.Context, token string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (string, *models.Session, error)
	Logout(ctx context.Context, token string) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient   *resty.Client
	configured   bool
	loginTimeout time.Duration
}

// NewClient builds an identity API client using the provided configuration.
func NewClient(cfg config.IdentityConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{
		httpClient:   restyClient,
		configured:   base != "" && cfg.APIKey != "",
		loginTimeout: cfg.LoginTimeout,
	}
}

type sessionPayload struct {
	UID   string        `json:"uid"`
	Roles []models.Role `json:"roles"`
}

type loginResponse struct {
	Token string        `json:"token"`
	UID   string        `json:"uid"`
	Roles []models.Role `json:"roles"`
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// VerifySession resolves an opaque session token. An expired or unknown token
// yields a nil session, not an error; callers decide what to do with an
// anonymous request.
func (c *APIClient) VerifySession(ctx context.Context, token string) (*models.Session, error) {
	if !c.configured {
		return nil, apperrors.New(apperrors.CodeServerMisconfigured, "identity provider is not configured")
	}
	if token == "" {
		return nil, nil
	}

	result := new(sessionPayload)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"token": token}).
		SetResult(result).
		SetError(apiErr).
		Post("/v1/sessions/verify")
	if err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized, resp.StatusCode() == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode() >= http.StatusBadRequest:
		return nil, fmt.Errorf("identity api error: status=%d, code=%s, message=%s",
			resp.StatusCode(), apiErr.Error.Code, apiErr.Error.Message)
	}

	return &models.Session{UID: result.UID, Roles: result.Roles}, nil
}

// Login exchanges credentials for a fresh session token. The outbound call is
// wrapped in a fixed timeout; running past it surfaces as TIMEOUT.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, *models.Session, error) {
	if !c.configured {
		return "", nil, apperrors.New(apperrors.CodeServerMisconfigured, "identity provider is not configured")
	}

	timeout := c.loginTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result := new(loginResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctxWithTimeout).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(result).
		SetError(apiErr).
		Post("/v1/sessions")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", nil, apperrors.Wrap(apperrors.CodeTimeout, err, "identity provider did not respond in time")
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return "", nil, apperrors.New(apperrors.CodeInvalidCredentials, "invalid email or password")
	case resp.StatusCode() >= http.StatusBadRequest:
		return "", nil, fmt.Errorf("identity api error: status=%d, code=%s, message=%s",
			resp.StatusCode(), apiErr.Error.Code, apiErr.Error.Message)
	}

	return result.Token, &models.Session{UID: result.UID, Roles: result.Roles}, nil
}

// Logout revokes the session token upstream. Revoking an already-dead token
// is not an error.
func (c *APIClient) Logout(ctx context.Context, token string) error {
	if !c.configured {
		return apperrors.New(apperrors.CodeServerMisconfigured, "identity provider is not configured")
	}
	if token == "" {
		return nil
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"token": token}).
		Delete("/v1/sessions")
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest &&
		resp.StatusCode() != http.StatusUnauthorized &&
		resp.StatusCode() != http.StatusNotFound {
		return fmt.Errorf("identity api error: status=%d", resp.StatusCode())
	}
	return nil
}
