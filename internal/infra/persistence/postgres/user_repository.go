package postgres

import (
	"context"
	"time"

	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements repository.UserRepository using GORM.
// Email and username comparisons run through LOWER() so the
// case-insensitive uniqueness rule holds at the database too.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for the PostgreSQL user repository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func toUserDomain(userM *model.UserModel) *entity.UserWithPassword {
	return &entity.UserWithPassword{
		User: entity.User{
			ID:        userM.ID,
			Email:     userM.Email,
			Username:  userM.Username,
			CreatedAt: userM.CreatedAt,
		},
		PasswordHash: userM.PasswordHash,
	}
}

func fromUserDomain(user *entity.UserWithPassword) *model.UserModel {
	return &model.UserModel{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
}

// GetAll retrieves every user, without credentials.
func (repo *userRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	var userMs []model.UserModel
	if err := repo.db.WithContext(ctx).Order("created_at, id").Find(&userMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userMs))
	for i := range userMs {
		users = append(users, &toUserDomain(&userMs[i]).User)
	}

	return users, nil
}

// GetByID retrieves a single user by their unique ID, without credential.
func (repo *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return &toUserDomain(&userM).User, nil
}

// GetByEmail retrieves the credential-bearing record for an email.
func (repo *userRepository) GetByEmail(ctx context.Context, email string) (*entity.UserWithPassword, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user, mapping unique-constraint violations onto
// the duplicate-email/duplicate-username domain errors.
func (repo *userRepository) Create(ctx context.Context, user *entity.UserWithPassword) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if err := repo.db.WithContext(ctx).Create(fromUserDomain(user)).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			if violatesColumn(err, "username") {
				return domainerrors.ErrDuplicateUsername.WrapMessage("username already exists")
			}

			return domainerrors.ErrDuplicateEmail.WrapMessage("email already exists")
		}

		return errors.Wrap(err, "failed to create user")
	}

	return nil
}

// Update replaces the stored record identified by user.ID.
func (repo *userRepository) Update(ctx context.Context, user *entity.UserWithPassword) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":         user.Email,
			"username":      user.Username,
			"password_hash": user.PasswordHash,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			if violatesColumn(result.Error, "username") {
				return domainerrors.ErrDuplicateUsername.WrapMessage("username already exists")
			}

			return domainerrors.ErrDuplicateEmail.WrapMessage("email already exists")
		}

		return errors.Wrap(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete removes the user with the given id.
func (repo *userRepository) Delete(ctx context.Context, id string) error {
	result := repo.db.WithContext(ctx).Delete(&model.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// EmailExists reports whether any user has the given email.
func (repo *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check email existence")
	}

	return count > 0, nil
}

// UsernameExists reports whether any user has the given username.
func (repo *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("LOWER(username) = LOWER(?)", username).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check username existence")
	}

	return count > 0, nil
}
