package middleware

import (
	"strings"

	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUser         = "currentUser"
	ContextKeySessionToken = "sessionToken"
)

// AuthMiddleware guards routes behind a valid session token. Tokens are
// opaque strings resolved against the auth use case's session table, so
// validity is decided server-side, not by inspecting the token.
type AuthMiddleware struct {
	auth usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(auth usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// BearerToken extracts the token from the Authorization header, or ""
// when the header is missing or not a Bearer scheme.
func BearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader {
		return ""
	}

	return token
}

// Authenticate resolves the bearer token to its user and stores both on
// the request context. Expired sessions are cleaned up lazily as part of
// the lookup.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := BearerToken(c)
		if token == "" {
			return domainerrors.ErrAuthenticationRequired
		}

		user, err := m.auth.GetCurrentUser(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}
		if user == nil {
			return domainerrors.ErrInvalidSession
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeySessionToken, token)

		return next(c)
	}
}
