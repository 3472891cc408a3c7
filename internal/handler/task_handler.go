package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "tasktrack/internal/errors"
	"tasktrack/internal/service"
	"tasktrack/internal/session"
	"tasktrack/internal/web"
)

// TaskHandler serves the task list page and the form endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task page handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Index renders the current user's task list, newest first.
func (h *TaskHandler) Index(c echo.Context) error {
	ident, ok := session.CurrentIdentity(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	tasks, err := h.taskService.List(c.Request().Context(), ident.UserID)
	if err != nil {
		c.Logger().Errorf("list tasks: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.Render(http.StatusOK, "index.html", echo.Map{
		"Email": ident.Email,
		"Tasks": tasks,
		"Flash": web.TakeFlash(c),
	})
}

// Create handles the new-task form.
func (h *TaskHandler) Create(c echo.Context) error {
	ident, ok := session.CurrentIdentity(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	_, err := h.taskService.Create(
		c.Request().Context(),
		ident.UserID,
		c.FormValue("title"),
		c.FormValue("description"),
		c.FormValue("status"),
	)
	if err != nil {
		h.flashTaskError(c, err)
	}
	return c.Redirect(http.StatusFound, "/")
}

// Update handles the edit form. Only submitted fields change.
func (h *TaskHandler) Update(c echo.Context) error {
	ident, ok := session.CurrentIdentity(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		web.SetFlash(c, "Task not found.")
		return c.Redirect(http.StatusFound, "/")
	}

	if err := c.Request().ParseForm(); err != nil {
		web.SetFlash(c, "Invalid form submission.")
		return c.Redirect(http.StatusFound, "/")
	}
	form := c.Request().PostForm

	var update service.TaskUpdate
	if form.Has("title") {
		v := form.Get("title")
		update.Title = &v
	}
	if form.Has("description") {
		v := form.Get("description")
		update.Description = &v
	}
	if form.Has("status") {
		v := form.Get("status")
		update.Status = &v
	}

	if _, err := h.taskService.Update(c.Request().Context(), ident.UserID, taskID, update); err != nil {
		h.flashTaskError(c, err)
	}
	return c.Redirect(http.StatusFound, "/")
}

// Delete handles the delete form.
func (h *TaskHandler) Delete(c echo.Context) error {
	ident, ok := session.CurrentIdentity(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		web.SetFlash(c, "Task not found.")
		return c.Redirect(http.StatusFound, "/")
	}

	if err := h.taskService.Delete(c.Request().Context(), ident.UserID, taskID); err != nil {
		h.flashTaskError(c, err)
	}
	return c.Redirect(http.StatusFound, "/")
}

func (h *TaskHandler) flashTaskError(c echo.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		web.SetFlash(c, "Title is required.")
	case errors.Is(err, apperrors.ErrTaskNotFound):
		web.SetFlash(c, "Task not found.")
	default:
		c.Logger().Errorf("task operation: %v", err)
		web.SetFlash(c, "Something went wrong, please try again.")
	}
}

func parseTaskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
