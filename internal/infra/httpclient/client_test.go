package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do_MergesHeadersOverDefaults(t *testing.T) {
	var gotAuth, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL,
		WithDefaultHeader("Authorization", "Bearer default-token"),
		WithDefaultHeader("Accept", "application/json"),
	)

	_, err := client.Do(context.Background(), &Request{
		Method:  http.MethodGet,
		Path:    "/todos",
		Headers: map[string]string{"Authorization": "Bearer per-call-token"},
	})
	require.NoError(t, err)

	// Per-call header wins, untouched default survives.
	assert.Equal(t, "Bearer per-call-token", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_Do_SerializesJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"t1"}`))
	}))
	defer server.Close()

	client := New(server.URL)

	resp, err := client.Post(context.Background(), "/todos", map[string]string{"title": "Buy milk"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Buy milk", gotBody["title"])

	var decoded struct {
		ID string `json:"id"`
	}
	require.NoError(t, resp.DecodeJSON(&decoded))
	assert.Equal(t, "t1", decoded.ID)
}

func TestClient_Do_QueryParameters(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL)

	query := url.Values{}
	query.Set("userId", "u1")
	_, err := client.Get(context.Background(), "/todos", query)
	require.NoError(t, err)

	assert.Equal(t, "u1", gotQuery.Get("userId"))
}

func TestClient_Do_FailureStatusBecomesTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such todo", http.StatusNotFound)
	}))
	defer server.Close()

	client := New(server.URL)

	resp, err := client.Get(context.Background(), "/todos/missing", nil)
	require.Error(t, err)
	assert.Nil(t, resp)

	status, ok := StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)
	assert.True(t, IsNotFound(err))

	server2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server2.Close()

	_, err = New(server2.URL).Get(context.Background(), "/todos", nil)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestClient_ConvenienceVerbs(t *testing.T) {
	var methods []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(server.URL)
	ctx := context.Background()

	_, err := client.Get(ctx, "/x", nil)
	require.NoError(t, err)
	_, err = client.Post(ctx, "/x", nil)
	require.NoError(t, err)
	_, err = client.Put(ctx, "/x", nil)
	require.NoError(t, err)
	_, err = client.Patch(ctx, "/x", nil)
	require.NoError(t, err)
	_, err = client.Delete(ctx, "/x")
	require.NoError(t, err)

	assert.Equal(t, []string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
	}, methods)
}
