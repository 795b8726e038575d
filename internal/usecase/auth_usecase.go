package usecase

import (
	"context"

	"tasktrack/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput defines the data required to change an account password.
type ChangePasswordInput struct {
	UserID          string `json:"userId" validate:"required"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// AuthUsecase defines the interface for registration, authentication and
// session lifecycle. It owns the active-session table; sessions expire
// lazily on validation, a fixed interval after issuance or refresh.
type AuthUsecase interface {
	// Register validates the input, creates the account and issues a new
	// session. The returned session's user carries no credential.
	Register(ctx context.Context, input *RegisterInput) (*entity.AuthSession, error)

	// Login checks the credentials and issues a new session. Unknown email
	// and wrong password fail with the same ErrInvalidCredentials.
	Login(ctx context.Context, input *LoginInput) (*entity.AuthSession, error)

	// Logout removes the session for the token if present. Idempotent,
	// never fails.
	Logout(ctx context.Context, token string) error

	// ValidateSession returns the session for the token, or nil when the
	// token is unknown or expired. A found-but-expired entry is removed as
	// a side effect.
	ValidateSession(ctx context.Context, token string) (*entity.AuthSession, error)

	// GetCurrentUser returns the session's user, or nil when the token is
	// unknown or expired, with the same lazy cleanup as ValidateSession.
	GetCurrentUser(ctx context.Context, token string) (*entity.User, error)

	// RefreshSession atomically replaces the session with a new token and
	// a renewed expiry, invalidating the old token. Fails with
	// ErrInvalidSession when the token is unknown or expired.
	RefreshSession(ctx context.Context, token string) (*entity.AuthSession, error)

	// ChangePassword updates the stored credential after verifying that
	// the session resolves to input.UserID and that the current password
	// matches.
	ChangePassword(ctx context.Context, token string, input *ChangePasswordInput) error

	// IsAuthenticated reports whether the token currently resolves to a
	// valid session. Pure check: no lazy cleanup side effect.
	IsAuthenticated(token string) bool
}
