package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpmiddleware "tasktrack/internal/delivery/http/middleware"
	"tasktrack/internal/delivery/http/router/handler"
	"tasktrack/internal/delivery/http/validator"
	"tasktrack/internal/domain/entity"
	"tasktrack/internal/domain/repository"
	"tasktrack/internal/infra/persistence/memory"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho(todoRepo repository.TodoRepository, userRepo repository.UserRepository) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(logger).HandleHTTPError

	e.GET("/todos", handler.NewTodoHandler(todoRepo, logger).List)
	e.GET("/todos/:id", handler.NewTodoHandler(todoRepo, logger).Get)
	e.POST("/todos", handler.NewTodoHandler(todoRepo, logger).Create)
	e.PATCH("/todos/:id", handler.NewTodoHandler(todoRepo, logger).Update)
	e.DELETE("/todos/:id", handler.NewTodoHandler(todoRepo, logger).Delete)

	userHandler := handler.NewUserHandler(userRepo, logger)
	e.GET("/users", userHandler.List)
	e.GET("/users/check-email", userHandler.CheckEmail)
	e.GET("/users/check-username", userHandler.CheckUsername)
	e.GET("/users/email/:email", userHandler.GetByEmail)
	e.GET("/users/:id", userHandler.Get)
	e.POST("/users", userHandler.Create)
	e.PATCH("/users/:id", userHandler.Update)
	e.DELETE("/users/:id", userHandler.Delete)

	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestTodoEndpoints_CreateThenFetch(t *testing.T) {
	e := newTestEcho(memory.NewTodoRepository(), memory.NewUserRepository())

	rec := doRequest(e, http.MethodPost, "/todos", `{"title":"Buy milk","userId":"u1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Buy milk", created["title"])
	assert.Equal(t, "u1", created["userId"])
	assert.NotEmpty(t, created["id"])

	rec = doRequest(e, http.MethodGet, "/todos/"+created["id"].(string), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created["id"], fetched["id"])
}

func TestTodoEndpoints_ListFiltersByUserID(t *testing.T) {
	todoRepo := memory.NewTodoRepository()
	ctx := context.Background()
	require.NoError(t, todoRepo.Create(ctx, &entity.Todo{Title: "mine", UserID: "u1"}))
	require.NoError(t, todoRepo.Create(ctx, &entity.Todo{Title: "theirs", UserID: "u2"}))

	e := newTestEcho(todoRepo, memory.NewUserRepository())

	rec := doRequest(e, http.MethodGet, "/todos?userId=u1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "mine", records[0]["title"])
}

func TestTodoEndpoints_NotFoundEnvelope(t *testing.T) {
	e := newTestEcho(memory.NewTodoRepository(), memory.NewUserRepository())

	rec := doRequest(e, http.MethodGet, "/todos/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "TODO_NOT_FOUND", envelope.Error.Code)
	assert.Equal(t, "todo not found", envelope.Error.Message)
}

func TestTodoEndpoints_PatchMergesSubset(t *testing.T) {
	todoRepo := memory.NewTodoRepository()
	ctx := context.Background()
	todo := &entity.Todo{Title: "Buy milk", UserID: "u1"}
	require.NoError(t, todoRepo.Create(ctx, todo))

	e := newTestEcho(todoRepo, memory.NewUserRepository())

	rec := doRequest(e, http.MethodPatch, "/todos/"+todo.ID, `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := todoRepo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
	assert.Equal(t, "Buy milk", stored.Title)
}

func TestTodoEndpoints_DeleteReturnsNoContent(t *testing.T) {
	todoRepo := memory.NewTodoRepository()
	ctx := context.Background()
	todo := &entity.Todo{Title: "Buy milk", UserID: "u1"}
	require.NoError(t, todoRepo.Create(ctx, todo))

	e := newTestEcho(todoRepo, memory.NewUserRepository())

	rec := doRequest(e, http.MethodDelete, "/todos/"+todo.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/todos/"+todo.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTodoEndpoints_CreateRequiresTitle(t *testing.T) {
	e := newTestEcho(memory.NewTodoRepository(), memory.NewUserRepository())

	rec := doRequest(e, http.MethodPost, "/todos", `{"userId":"u1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
