package handler

import (
	"log/slog"
	"net/http"

	httpmiddleware "tasktrack/internal/delivery/http/middleware"
	"tasktrack/internal/domain/entity"
	domainerrors "tasktrack/internal/domain/errors"
	"tasktrack/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type updateAppTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

type todoStatsRecord struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// AppTodoHandler serves the owner-scoped todo endpoints under /api. Every
// route runs behind the auth middleware, and the session's user is always
// passed to the use case as the owner, so the ownership rules apply on
// each call.
type AppTodoHandler struct {
	todos  usecase.TodoUsecase
	logger *slog.Logger
}

// NewAppTodoHandler is the constructor for AppTodoHandler, injected by Fx.
func NewAppTodoHandler(todos usecase.TodoUsecase, logger *slog.Logger) *AppTodoHandler {
	return &AppTodoHandler{
		todos:  todos,
		logger: logger,
	}
}

func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := c.Get(httpmiddleware.ContextKeyUser).(*entity.User)
	if !ok {
		return nil, errors.New("authenticated route without a user in context")
	}

	return user, nil
}

// List handles GET /api/todos, scoped to the session's user.
func (h *AppTodoHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	todos, err := h.todos.ListTodos(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	records := make([]todoRecord, 0, len(todos))
	for _, todo := range todos {
		records = append(records, toTodoRecord(todo))
	}

	return c.JSON(http.StatusOK, records)
}

// Stats handles GET /api/todos/stats with the active and completed counts
// for the session's user.
func (h *AppTodoHandler) Stats(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	active, err := h.todos.CountActiveTodos(ctx, user.ID)
	if err != nil {
		return errors.WithStack(err)
	}
	completed, err := h.todos.CountCompletedTodos(ctx, user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, todoStatsRecord{Active: active, Completed: completed})
}

// Get handles GET /api/todos/:id.
func (h *AppTodoHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	todo, err := h.todos.GetTodo(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}
	if todo == nil {
		return domainerrors.ErrTodoNotFound
	}

	return c.JSON(http.StatusOK, toTodoRecord(todo))
}

// Create handles POST /api/todos.
func (h *AppTodoHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var input usecase.CreateTodoInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid todo payload")
	}

	todo, err := h.todos.CreateTodo(c.Request().Context(), &input, user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, toTodoRecord(todo))
}

// Update handles PATCH /api/todos/:id, merging any subset of title and
// completed over the stored record.
func (h *AppTodoHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var body updateAppTodoRequest
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid todo payload")
	}

	input := &usecase.UpdateTodoInput{
		ID:        c.Param("id"),
		Title:     body.Title,
		Completed: body.Completed,
	}
	todo, err := h.todos.UpdateTodo(c.Request().Context(), input, user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toTodoRecord(todo))
}

// Toggle handles POST /api/todos/:id/toggle.
func (h *AppTodoHandler) Toggle(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	todo, err := h.todos.ToggleTodo(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toTodoRecord(todo))
}

// Delete handles DELETE /api/todos/:id.
func (h *AppTodoHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.todos.DeleteTodo(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
