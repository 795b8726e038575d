package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"

	"github.com/google/uuid"
)

// userRepository implements repository.UserRepository over a map.
// Email and username lookups are case-insensitive.
type userRepository struct {
	mu    sync.Mutex
	users map[string]*entity.UserWithPassword
}

// NewUserRepository is the constructor for the in-memory user repository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		users: make(map[string]*entity.UserWithPassword),
	}
}

// GetAll retrieves every user, without credentials.
func (repo *userRepository) GetAll(_ context.Context) ([]*entity.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	result := make([]*entity.User, 0, len(repo.users))
	for _, user := range repo.users {
		result = append(result, user.User.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}

		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// GetByID retrieves a single user by their unique ID, without credential.
func (repo *userRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user.User.Clone(), nil
}

// GetByEmail retrieves the credential-bearing record for an email.
func (repo *userRepository) GetByEmail(_ context.Context, email string) (*entity.UserWithPassword, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.users {
		if strings.EqualFold(user.Email, email) {
			return user.Clone(), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// Create persists a new user, assigning a fresh id and creation time when unset.
func (repo *userRepository) Create(_ context.Context, user *entity.UserWithPassword) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	repo.users[user.ID] = user.Clone()

	return nil
}

// Update replaces the stored record identified by user.ID.
func (repo *userRepository) Update(_ context.Context, user *entity.UserWithPassword) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}

	repo.users[user.ID] = user.Clone()

	return nil
}

// Delete removes the user with the given id.
func (repo *userRepository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.users[id]; !ok {
		return repository.ErrUserNotFound
	}

	delete(repo.users, id)

	return nil
}

// EmailExists reports whether any user has the given email.
func (repo *userRepository) EmailExists(_ context.Context, email string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.users {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}

	return false, nil
}

// UsernameExists reports whether any user has the given username.
func (repo *userRepository) UsernameExists(_ context.Context, username string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, user := range repo.users {
		if strings.EqualFold(user.Username, username) {
			return true, nil
		}
	}

	return false, nil
}
