package remote

import (
	"context"
	"net/url"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/infra/httpclient"

	"github.com/pkg/errors"
)

type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (record *userRecord) toDomain() *entity.UserWithPassword {
	return &entity.UserWithPassword{
		User: entity.User{
			ID:        record.ID,
			Email:     record.Email,
			Username:  record.Username,
			CreatedAt: record.CreatedAt,
		},
		PasswordHash: record.PasswordHash,
	}
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

// userRepository implements repository.UserRepository over the wire.
type userRepository struct {
	client httpclient.Client
}

// NewUserRepository is the constructor for the remote user repository.
func NewUserRepository(client httpclient.Client) repository.UserRepository {
	return &userRepository{client: client}
}

// GetAll retrieves every user, without credentials.
func (repo *userRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	resp, err := repo.client.Get(ctx, "/users", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	var records []userRecord
	if err := resp.DecodeJSON(&records); err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(records))
	for i := range records {
		users = append(users, &records[i].toDomain().User)
	}

	return users, nil
}

// GetByID retrieves a single user; a remote 404 becomes ErrUserNotFound.
func (repo *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	resp, err := repo.client.Get(ctx, "/users/"+url.PathEscape(id), nil)
	if err != nil {
		if httpclient.IsNotFound(err) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch user")
	}

	var record userRecord
	if err := resp.DecodeJSON(&record); err != nil {
		return nil, err
	}

	return &record.toDomain().User, nil
}

// GetByEmail retrieves the credential-bearing record for an email; a
// remote 404 becomes ErrUserNotFound.
func (repo *userRepository) GetByEmail(ctx context.Context, email string) (*entity.UserWithPassword, error) {
	resp, err := repo.client.Get(ctx, "/users/email/"+url.PathEscape(email), nil)
	if err != nil {
		if httpclient.IsNotFound(err) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch user by email")
	}

	var record userRecord
	if err := resp.DecodeJSON(&record); err != nil {
		return nil, err
	}

	return record.toDomain(), nil
}

// Create posts the user and copies the server-assigned fields back.
func (repo *userRepository) Create(ctx context.Context, user *entity.UserWithPassword) error {
	body := map[string]any{
		"email":        user.Email,
		"username":     user.Username,
		"passwordHash": user.PasswordHash,
	}
	if user.ID != "" {
		body["id"] = user.ID
	}
	if !user.CreatedAt.IsZero() {
		body["createdAt"] = user.CreatedAt
	}

	resp, err := repo.client.Post(ctx, "/users", body)
	if err != nil {
		return errors.Wrap(err, "failed to create user")
	}

	var record userRecord
	if err := resp.DecodeJSON(&record); err != nil {
		return err
	}

	user.ID = record.ID
	user.CreatedAt = record.CreatedAt

	return nil
}

// Update patches the stored record identified by user.ID.
func (repo *userRepository) Update(ctx context.Context, user *entity.UserWithPassword) error {
	body := map[string]any{
		"email":        user.Email,
		"username":     user.Username,
		"passwordHash": user.PasswordHash,
	}

	_, err := repo.client.Patch(ctx, "/users/"+url.PathEscape(user.ID), body)
	if err != nil {
		if httpclient.IsNotFound(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to update user")
	}

	return nil
}

// Delete removes the user with the given id.
func (repo *userRepository) Delete(ctx context.Context, id string) error {
	_, err := repo.client.Delete(ctx, "/users/"+url.PathEscape(id))
	if err != nil {
		if httpclient.IsNotFound(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to delete user")
	}

	return nil
}

// EmailExists asks the remote store whether any user has the email.
func (repo *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return repo.exists(ctx, "/users/check-email", "email", email)
}

// UsernameExists asks the remote store whether any user has the username.
func (repo *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return repo.exists(ctx, "/users/check-username", "username", username)
}

func (repo *userRepository) exists(ctx context.Context, path, key, value string) (bool, error) {
	query := url.Values{}
	query.Set(key, value)

	resp, err := repo.client.Get(ctx, path, query)
	if err != nil {
		return false, errors.Wrap(err, "failed to check existence")
	}

	var result existsResponse
	if err := resp.DecodeJSON(&result); err != nil {
		return false, err
	}

	return result.Exists, nil
}
