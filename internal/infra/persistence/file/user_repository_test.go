package file

import (
	"context"
	"testing"

	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_SurvivesReopen(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	repo := NewUserRepository(store)
	user := &entity.UserWithPassword{
		User:         entity.User{Email: "alice@example.com", Username: "alice"},
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	reopened := NewUserRepository(store)
	byEmail, err := reopened.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)
}

func TestUserRepository_CaseInsensitiveLookups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	repo := NewUserRepository(store)

	require.NoError(t, repo.Create(ctx, &entity.UserWithPassword{
		User:         entity.User{Email: "Alice@Example.com", Username: "Alice"},
		PasswordHash: "hash",
	}))

	byEmail, err := repo.GetByEmail(ctx, "alice@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "Alice@Example.com", byEmail.Email)

	exists, err := repo.EmailExists(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_UpdateAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	repo := NewUserRepository(store)

	user := &entity.UserWithPassword{
		User:         entity.User{Email: "alice@example.com", Username: "alice"},
		PasswordHash: "hash-one",
	}
	require.NoError(t, repo.Create(ctx, user))

	user.PasswordHash = "hash-two"
	require.NoError(t, repo.Update(ctx, user))

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash-two", byEmail.PasswordHash)

	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err = repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserRepository_MissingRecordsError(t *testing.T) {
	repo := NewUserRepository(newTestStore(t))
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	err = repo.Delete(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	exists, err := repo.UsernameExists(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
}
