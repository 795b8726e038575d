package handler

import (
	"log/slog"
	"net/http"
	"time"

	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// userRecord is the wire shape of a user. The credential only appears on
// the credential-bearing lookup (GET /users/email/:email).
type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toUserRecord(user *entity.User) userRecord {
	return userRecord{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

func toCredentialRecord(user *entity.UserWithPassword) userRecord {
	record := toUserRecord(&user.User)
	record.PasswordHash = user.PasswordHash

	return record
}

type createUserRequest struct {
	ID           string     `json:"id"`
	Email        string     `json:"email" validate:"required"`
	Username     string     `json:"username" validate:"required"`
	PasswordHash string     `json:"passwordHash" validate:"required"`
	CreatedAt    *time.Time `json:"createdAt"`
}

type updateUserRequest struct {
	Email        *string `json:"email"`
	Username     *string `json:"username"`
	PasswordHash *string `json:"passwordHash"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

// UserHandler serves the user endpoints of the store server.
type UserHandler struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(repo repository.UserRepository, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		repo:   repo,
		logger: logger,
	}
}

// List handles GET /users. Credentials never appear here.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.repo.GetAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	records := make([]userRecord, 0, len(users))
	for _, user := range users {
		records = append(records, toUserRecord(user))
	}

	return c.JSON(http.StatusOK, records)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.repo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toUserRecord(user))
}

// GetByEmail handles GET /users/email/:email, returning the
// credential-bearing record used by login flows.
func (h *UserHandler) GetByEmail(c echo.Context) error {
	user, err := h.repo.GetByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toCredentialRecord(user))
}

// CheckEmail handles GET /users/check-email?email=.
func (h *UserHandler) CheckEmail(c echo.Context) error {
	exists, err := h.repo.EmailExists(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, existsResponse{Exists: exists})
}

// CheckUsername handles GET /users/check-username?username=.
func (h *UserHandler) CheckUsername(c echo.Context) error {
	exists, err := h.repo.UsernameExists(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, existsResponse{Exists: exists})
}

// Create handles POST /users. Uniqueness is enforced here so every
// repository driver behaves the same, not only the ones with database
// constraints.
func (h *UserHandler) Create(c echo.Context) error {
	var input createUserRequest
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user payload")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if exists, err := h.repo.EmailExists(ctx, input.Email); err != nil {
		return errors.WithStack(err)
	} else if exists {
		return domainerrors.ErrDuplicateEmail
	}
	if exists, err := h.repo.UsernameExists(ctx, input.Username); err != nil {
		return errors.WithStack(err)
	} else if exists {
		return domainerrors.ErrDuplicateUsername
	}

	user := &entity.UserWithPassword{
		User: entity.User{
			ID:       input.ID,
			Email:    input.Email,
			Username: input.Username,
		},
		PasswordHash: input.PasswordHash,
	}
	if input.CreatedAt != nil {
		user.CreatedAt = *input.CreatedAt
	}

	if err := h.repo.Create(ctx, user); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, toCredentialRecord(user))
}

// Update handles PATCH /users/:id, merging any subset of email, username
// and passwordHash over the stored record.
func (h *UserHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	existing, err := h.repo.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.WithStack(err)
	}

	// The credential lives on the full record, which only the email
	// lookup exposes.
	user, err := h.repo.GetByEmail(ctx, existing.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	var input updateUserRequest
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user payload")
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.PasswordHash != nil {
		user.PasswordHash = *input.PasswordHash
	}

	if err := h.repo.Update(ctx, user); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toCredentialRecord(user))
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
