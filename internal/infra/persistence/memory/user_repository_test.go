package memory

import (
	"context"
	"testing"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(email, username string) *entity.UserWithPassword {
	return &entity.UserWithPassword{
		User: entity.User{
			Email:    email,
			Username: username,
		},
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
	}
}

func TestUserRepository_CreateAndLookups(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := newTestUser("alice@example.com", "alice")
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)
}

func TestUserRepository_EmailLookupIsCaseInsensitive(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestUser("Alice@Example.com", "alice")))

	byEmail, err := repo.GetByEmail(ctx, "alice@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "Alice@Example.com", byEmail.Email)

	exists, err := repo.EmailExists(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UsernameExists(ctx, "ALICE")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_GetByIDExcludesCredential(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := newTestUser("alice@example.com", "alice")
	require.NoError(t, repo.Create(ctx, user))

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)

	// The public read path returns the credential-free shape.
	assert.IsType(t, &entity.User{}, byID)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := newTestUser("alice@example.com", "alice")
	require.NoError(t, repo.Create(ctx, user))

	user.PasswordHash = "$2a$10$anotherhashanotherhash"
	require.NoError(t, repo.Update(ctx, user))

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err = repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_MissingRecordsError(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	err = repo.Update(ctx, newTestUser("nobody@example.com", "nobody"))
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	err = repo.Delete(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	exists, err := repo.EmailExists(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
