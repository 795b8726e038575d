package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"tasktrack/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserEndpoints_CreateThenLookups(t *testing.T) {
	e := newTestEcho(memory.NewTodoRepository(), memory.NewUserRepository())

	rec := doRequest(e, http.MethodPost, "/users", `{"email":"alice@example.com","username":"alice","passwordHash":"$2a$10$hash"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created["id"].(string)
	require.NotEmpty(t, id)

	// Public lookup carries no credential.
	rec = doRequest(e, http.MethodGet, "/users/"+id, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, "alice@example.com", fetched["email"])
	assert.NotContains(t, fetched, "passwordHash")

	// The email lookup is the credential-bearing one.
	rec = doRequest(e, http.MethodGet, "/users/email/alice@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, "$2a$10$hash", fetched["passwordHash"])
}

func TestUserEndpoints_DuplicateEmailConflict(t *testing.T) {
	e := newTestEcho(memory.NewTodoRepository(), memory.NewUserRepository())

	rec := doRequest(e, http.MethodPost, "/users", `{"email":"alice@example.com","username":"alice","passwordHash":"h"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same email in a different case still conflicts.
	rec = doRequest(e, http.MethodPost, "/users", `{"email":"ALICE@example.com","username":"alice2","passwordHash":"h"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "DUPLICATE_EMAIL", envelope.Error.Code)

	rec = doRequest(e, http.MethodPost, "/users", `{"email":"bob@example.com","username":"Alice","passwordHash":"h"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "DUPLICATE_USERNAME", envelope.Error.Code)
}

func TestUserEndpoints_ExistenceChecks(t *testing.T) {
	e := newTestEcho(memory.NewTodoRepository(), memory.NewUserRepository())

	rec := doRequest(e, http.MethodPost, "/users", `{"email":"alice@example.com","username":"alice","passwordHash":"h"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var result struct {
		Exists bool `json:"exists"`
	}

	rec = doRequest(e, http.MethodGet, "/users/check-email?email=alice@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Exists)

	rec = doRequest(e, http.MethodGet, "/users/check-username?username=nobody", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.Exists)
}

func TestUserEndpoints_PatchUpdatesCredential(t *testing.T) {
	e := newTestEcho(memory.NewTodoRepository(), memory.NewUserRepository())

	rec := doRequest(e, http.MethodPost, "/users", `{"email":"alice@example.com","username":"alice","passwordHash":"old-hash"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doRequest(e, http.MethodPatch, "/users/"+created["id"].(string), `{"passwordHash":"new-hash"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/users/email/alice@example.com", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, "new-hash", fetched["passwordHash"])
	assert.Equal(t, "alice", fetched["username"])
}

func TestUserEndpoints_DeleteAndMissing(t *testing.T) {
	e := newTestEcho(memory.NewTodoRepository(), memory.NewUserRepository())

	rec := doRequest(e, http.MethodPost, "/users", `{"email":"alice@example.com","username":"alice","passwordHash":"h"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doRequest(e, http.MethodDelete, "/users/"+created["id"].(string), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(e, http.MethodGet, "/users/email/alice@example.com", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
