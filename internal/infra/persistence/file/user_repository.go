package file

import (
	"context"
	"strings"
	"sync"
	"time"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const usersKey = "users"

type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toUserDomain(record *userRecord) *entity.UserWithPassword {
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

func fromUserDomain(user *entity.UserWithPassword) userRecord {
	return userRecord{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
}

// userRepository implements repository.UserRepository over a blob store.
// Email and username lookups are case-insensitive.
type userRepository struct {
	mu    sync.Mutex
	store *Store
}

// NewUserRepository is the constructor for the persisted user repository.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

// GetAll retrieves every user, without credentials.
func (repo *userRepository) GetAll(_ context.Context) ([]*entity.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0, len(records))
	for i := range records {
		users = append(users, &toUserDomain(&records[i]).User)
	}

	return users, nil
}

// GetByID retrieves a single user by their unique ID, without credential.
func (repo *userRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID == id {
			return &toUserDomain(&records[i]).User, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// GetByEmail retrieves the credential-bearing record for an email.
func (repo *userRepository) GetByEmail(_ context.Context, email string) (*entity.UserWithPassword, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if strings.EqualFold(records[i].Email, email) {
			return toUserDomain(&records[i]), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// Create appends a new user and rewrites the whole blob.
func (repo *userRepository) Create(_ context.Context, user *entity.UserWithPassword) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return err
	}

	if user.ID == "" {
		user.ID = freshUserID(records)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	records = append(records, fromUserDomain(user))

	return repo.save(records)
}

// Update replaces the stored record identified by user.ID.
func (repo *userRepository) Update(_ context.Context, user *entity.UserWithPassword) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == user.ID {
			records[i] = fromUserDomain(user)

			return repo.save(records)
		}
	}

	return repository.ErrUserNotFound
}

// Delete removes the user with the given id.
func (repo *userRepository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == id {
			records = append(records[:i], records[i+1:]...)

			return repo.save(records)
		}
	}

	return repository.ErrUserNotFound
}

// EmailExists reports whether any user has the given email.
func (repo *userRepository) EmailExists(_ context.Context, email string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return false, err
	}

	for i := range records {
		if strings.EqualFold(records[i].Email, email) {
			return true, nil
		}
	}

	return false, nil
}

// UsernameExists reports whether any user has the given username.
func (repo *userRepository) UsernameExists(_ context.Context, username string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	records, err := repo.load()
	if err != nil {
		return false, err
	}

	for i := range records {
		if strings.EqualFold(records[i].Username, username) {
			return true, nil
		}
	}

	return false, nil
}

func (repo *userRepository) load() ([]userRecord, error) {
	var records []userRecord
	if _, err := repo.store.Load(usersKey, &records); err != nil {
		return nil, errors.Wrap(err, "failed to load users blob")
	}

	return records, nil
}

func (repo *userRepository) save(records []userRecord) error {
	if err := repo.store.Save(usersKey, records); err != nil {
		return errors.Wrap(err, "failed to save users blob")
	}

	return nil
}

func freshUserID(records []userRecord) string {
	for {
		id := uuid.NewString()
		taken := false
		for i := range records {
			if records[i].ID == id {
				taken = true

				break
			}
		}
		if !taken {
			return id
		}
	}
}
