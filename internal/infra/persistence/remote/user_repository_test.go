package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tasktrack/internal/domain/repository"
	"tasktrack/internal/infra/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteUserRepository_GetByEmailMapsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"NOT_FOUND","message":"user not found"}}`, http.StatusNotFound)
	}))
	defer server.Close()

	repo := NewUserRepository(httpclient.New(server.URL))

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestRemoteUserRepository_GetByEmailDecodesCredential(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":"u1","email":"alice@example.com","username":"alice","passwordHash":"$2a$10$hash","createdAt":"2026-03-01T10:00:00Z"}`))
	}))
	defer server.Close()

	repo := NewUserRepository(httpclient.New(server.URL))

	user, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, "/users/email/alice@example.com", gotPath)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
}

func TestRemoteUserRepository_ExistenceChecks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/check-email":
			assert.Equal(t, "alice@example.com", r.URL.Query().Get("email"))
			w.Write([]byte(`{"exists":true}`))
		case "/users/check-username":
			assert.Equal(t, "alice", r.URL.Query().Get("username"))
			w.Write([]byte(`{"exists":false}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	repo := NewUserRepository(httpclient.New(server.URL))
	ctx := context.Background()

	exists, err := repo.EmailExists(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRemoteUserRepository_GetByIDStripsCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","email":"alice@example.com","username":"alice","createdAt":"2026-03-01T10:00:00Z"}`))
	}))
	defer server.Close()

	repo := NewUserRepository(httpclient.New(server.URL))

	user, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}
