package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tasktrack/config"
	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/domain/service"
	"tasktrack/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultSessionTTL = 24 * time.Hour
	minUsernameLength = 3
	minPasswordLength = 6
)

// authService implements the AuthUsecase interface. It owns the
// active-session table: sessions live in process memory, keyed by their
// opaque token, and expire lazily when a validation touches them.
type authService struct {
	userRepo   repository.UserRepository
	hasher     service.PasswordHasher
	tokens     service.TokenSource
	sessionTTL time.Duration
	logger     *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*entity.AuthSession

	// now is swapped out in tests to drive expiry.
	now func() time.Time
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Tokens   service.TokenSource
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	sessionTTL := defaultSessionTTL
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.SessionTTL > 0 {
		sessionTTL = params.Config.Auth.SessionTTL
	}

	return &authService{
		userRepo:   params.UserRepo,
		hasher:     params.Hasher,
		tokens:     params.Tokens,
		sessionTTL: sessionTTL,
		logger:     params.Logger,
		sessions:   make(map[string]*entity.AuthSession),
		now:        time.Now,
	}
}

// Register validates the input, creates the account and issues a new session.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.AuthSession, error) {
	srv.logger.Info("Starting registration", slog.String("email", input.Email))

	if err := validateRegistration(input); err != nil {
		srv.logger.Warn("Registration validation failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	emailExists, err := srv.userRepo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email uniqueness")
	}
	if emailExists {
		return nil, errors.Wrap(domainerrors.ErrDuplicateEmail, "registration rejected")
	}

	usernameExists, err := srv.userRepo.UsernameExists(ctx, input.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check username uniqueness")
	}
	if usernameExists {
		return nil, errors.Wrap(domainerrors.ErrDuplicateUsername, "registration rejected")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	newUser := &entity.UserWithPassword{
		User: entity.User{
			Email:    input.Email,
			Username: input.Username,
		},
		PasswordHash: passwordHash,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		srv.logger.Error("Failed to create user during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	// The session carries only the credential-free identity.
	session, err := srv.issueSession(newUser.User)
	if err != nil {
		return nil, err
	}

	srv.logger.Debug("Registration completed", slog.String("userID", newUser.ID))

	return session, nil
}

// Login checks the credentials and issues a new session.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.AuthSession, error) {
	srv.logger.Debug("Starting login", slog.String("email", input.Email))

	if input.Email == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingCredentials, "login rejected")
	}

	record, err := srv.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.logger.Warn("Login failed", slog.String("email", input.Email))

			// Same error as a wrong password, so callers cannot probe
			// which field was wrong.
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user by email")
	}

	if !srv.hasher.Check(input.Password, record.PasswordHash) {
		srv.logger.Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	session, err := srv.issueSession(record.User)
	if err != nil {
		return nil, err
	}

	srv.logger.Debug("User logged in", slog.String("userID", record.ID))

	return session, nil
}

// Logout removes the session for the token if present. Idempotent.
func (srv *authService) Logout(_ context.Context, token string) error {
	srv.mu.Lock()
	delete(srv.sessions, token)
	srv.mu.Unlock()

	srv.logger.Debug("Logged out")

	return nil
}

// ValidateSession returns the session for the token, or nil when the token
// is unknown or expired. A found-but-expired entry is removed.
func (srv *authService) ValidateSession(_ context.Context, token string) (*entity.AuthSession, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	session, ok := srv.sessions[token]
	if !ok {
		return nil, nil
	}

	if !session.Valid(srv.now()) {
		// Lazy expiry: remove on first sight, no background sweep.
		delete(srv.sessions, token)

		return nil, nil
	}

	return session.Clone(), nil
}

// GetCurrentUser returns the session's user, or nil when the token is
// unknown or expired.
func (srv *authService) GetCurrentUser(ctx context.Context, token string) (*entity.User, error) {
	session, err := srv.ValidateSession(ctx, token)
	if err != nil || session == nil {
		return nil, err
	}

	return session.User.Clone(), nil
}

// RefreshSession atomically replaces the session with a new token and a
// renewed expiry, invalidating the old token.
func (srv *authService) RefreshSession(_ context.Context, token string) (*entity.AuthSession, error) {
	newToken, err := srv.tokens.NewToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to mint session token")
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	session, ok := srv.sessions[token]
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrInvalidSession, "refresh rejected")
	}
	if !session.Valid(srv.now()) {
		delete(srv.sessions, token)

		return nil, errors.Wrap(domainerrors.ErrInvalidSession, "refresh rejected")
	}

	renewed := &entity.AuthSession{
		User:      session.User,
		Token:     newToken,
		ExpiresAt: srv.now().Add(srv.sessionTTL),
	}

	delete(srv.sessions, token)
	srv.sessions[newToken] = renewed

	srv.logger.Debug("Session refreshed", slog.String("userID", renewed.User.ID))

	return renewed.Clone(), nil
}

// ChangePassword updates the stored credential after verifying the session
// and the current password.
func (srv *authService) ChangePassword(ctx context.Context, token string, input *usecase.ChangePasswordInput) error {
	session, err := srv.ValidateSession(ctx, token)
	if err != nil {
		return err
	}
	if session == nil || session.User.ID != input.UserID {
		return errors.Wrap(domainerrors.ErrForbidden, "session does not match user")
	}

	if input.CurrentPassword == "" || input.NewPassword == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "both passwords are required")
	}
	if len(input.NewPassword) < minPasswordLength {
		return errors.Wrap(domainerrors.ErrValidationFailed, "new password is too short")
	}

	record, err := srv.userRepo.GetByEmail(ctx, session.User.Email)
	if err != nil {
		return errors.Wrap(err, "failed to load user for password change")
	}

	if !srv.hasher.Check(input.CurrentPassword, record.PasswordHash) {
		srv.logger.Warn("Password change rejected", slog.String("userID", input.UserID))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password does not match")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	record.PasswordHash = newHash
	if err := srv.userRepo.Update(ctx, record); err != nil {
		return errors.Wrap(err, "failed to update credential")
	}

	srv.logger.Info("Password changed", slog.String("userID", input.UserID))

	return nil
}

// IsAuthenticated reports whether the token currently resolves to a valid
// session, without the lazy-cleanup side effect of ValidateSession.
func (srv *authService) IsAuthenticated(token string) bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	session, ok := srv.sessions[token]

	return ok && session.Valid(srv.now())
}

// issueSession mints a token and registers a new session for the user.
func (srv *authService) issueSession(user entity.User) (*entity.AuthSession, error) {
	token, err := srv.tokens.NewToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to mint session token")
	}

	session := &entity.AuthSession{
		User:      user,
		Token:     token,
		ExpiresAt: srv.now().Add(srv.sessionTTL),
	}

	srv.mu.Lock()
	srv.sessions[token] = session
	srv.mu.Unlock()

	return session.Clone(), nil
}

func validateRegistration(input *usecase.RegisterInput) error {
	if !strings.Contains(input.Email, "@") {
		return errors.Wrap(domainerrors.ErrValidationFailed, "email address is malformed")
	}
	if len(strings.TrimSpace(input.Username)) < minUsernameLength {
		return errors.Wrap(domainerrors.ErrValidationFailed, "username must be at least 3 characters")
	}
	if len(input.Password) < minPasswordLength {
		return errors.Wrap(domainerrors.ErrValidationFailed, "password must be at least 6 characters")
	}

	return nil
}
