// Package handler contains the HTTP handlers for the store server. The
// store server speaks raw JSON records so the HTTP-backed repository
// adapters can decode responses directly.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// todoRecord is the wire shape of a todo served by the store server.
type todoRecord struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	UserID    string     `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func toTodoRecord(todo *entity.Todo) todoRecord {
	return todoRecord{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		UserID:    todo.UserID,
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}
}

type createTodoRequest struct {
	ID        string     `json:"id"`
	Title     string     `json:"title" validate:"required"`
	Completed bool       `json:"completed"`
	UserID    string     `json:"userId"`
	CreatedAt *time.Time `json:"createdAt"`
}

type updateTodoRequest struct {
	Title     *string    `json:"title"`
	Completed *bool      `json:"completed"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// TodoHandler serves the todo endpoints of the store server on top of
// whatever repository driver is configured.
type TodoHandler struct {
	repo   repository.TodoRepository
	logger *slog.Logger
}

// NewTodoHandler is the constructor for TodoHandler, injected by Fx.
func NewTodoHandler(repo repository.TodoRepository, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		repo:   repo,
		logger: logger,
	}
}

// List handles GET /todos with an optional userId filter.
func (h *TodoHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var todos []*entity.Todo
	var err error
	if ownerID := c.QueryParam("userId"); ownerID != "" {
		todos, err = h.repo.GetAllByOwner(ctx, ownerID)
	} else {
		todos, err = h.repo.GetAll(ctx)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	records := make([]todoRecord, 0, len(todos))
	for _, todo := range todos {
		records = append(records, toTodoRecord(todo))
	}

	return c.JSON(http.StatusOK, records)
}

// Get handles GET /todos/:id.
func (h *TodoHandler) Get(c echo.Context) error {
	todo, err := h.repo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return domainerrors.ErrTodoNotFound
		}

		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toTodoRecord(todo))
}

// Create handles POST /todos.
func (h *TodoHandler) Create(c echo.Context) error {
	var input createTodoRequest
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid todo payload")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	todo := &entity.Todo{
		ID:        input.ID,
		Title:     input.Title,
		Completed: input.Completed,
		UserID:    input.UserID,
	}
	if input.CreatedAt != nil {
		todo.CreatedAt = *input.CreatedAt
	}

	if err := h.repo.Create(c.Request().Context(), todo); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, toTodoRecord(todo))
}

// Update handles PATCH /todos/:id, merging any subset of title and
// completed over the stored record.
func (h *TodoHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	todo, err := h.repo.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return domainerrors.ErrTodoNotFound
		}

		return errors.WithStack(err)
	}

	var input updateTodoRequest
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid todo payload")
	}

	if input.Title != nil {
		todo.Title = *input.Title
	}
	if input.Completed != nil {
		todo.Completed = *input.Completed
	}
	if input.UpdatedAt != nil {
		todo.UpdatedAt = input.UpdatedAt
	}

	if err := h.repo.Update(ctx, todo); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toTodoRecord(todo))
}

// Delete handles DELETE /todos/:id.
func (h *TodoHandler) Delete(c echo.Context) error {
	if err := h.repo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return domainerrors.ErrTodoNotFound
		}

		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
