package handler

import (
	"log/slog"
	"net/http"
	"time"

	httpmiddleware "tasktrack/internal/delivery/http/middleware"
	"tasktrack/internal/domain/entity"
	"tasktrack/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// sessionRecord is the wire shape of an issued session.
type sessionRecord struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      userRecord `json:"user"`
}

func toSessionRecord(session *entity.AuthSession) sessionRecord {
	return sessionRecord{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      toUserRecord(&session.User),
	}
}

// AuthHandler serves the account and session endpoints on top of the auth
// use case.
type AuthHandler struct {
	auth   usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(auth usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// Register handles POST /auth/register. Field rules live in the use case,
// so its sentinels surface through the error envelope unchanged.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid registration payload")
	}

	session, err := h.auth.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, toSessionRecord(session))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid login payload")
	}

	session, err := h.auth.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toSessionRecord(session))
}

// Logout handles POST /auth/logout. Idempotent: an unknown or absent
// token still succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), httpmiddleware.BearerToken(c)); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Refresh handles POST /auth/refresh, trading the bearer token for a new
// session and invalidating the old token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	session, err := h.auth.RefreshSession(c.Request().Context(), httpmiddleware.BearerToken(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toSessionRecord(session))
}

// Me handles GET /auth/me behind the auth middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserRecord(user))
}

// ChangePassword handles POST /auth/change-password behind the auth
// middleware. The use case re-checks that the session matches the target
// user and that the current password is correct.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var input usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid password payload")
	}

	token, _ := c.Get(httpmiddleware.ContextKeySessionToken).(string)
	if err := h.auth.ChangePassword(c.Request().Context(), token, &input); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
