package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"apoteka/internal/auth"
	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
	"apoteka/internal/service"
)

// TaskHandler handles staff tasks and notifications.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a new task.
type CreateTaskRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Status       string `json:"status" validate:"omitempty,oneof=pending in_progress done"`
	DueDate      string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	AssignedToID *uint  `json:"assigned_to_id"`
}

// UpdateTaskRequest represents partial task changes.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress done"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

// AssignTaskRequest names the user a task is handed to.
type AssignTaskRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return err
	}

	task, err := h.taskService.Create(c.Request().Context(), service.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       model.TaskStatus(req.Status),
		DueDate:      dueDate,
		AssignedToID: req.AssignedToID,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

// Get godoc
// @Summary Get a task by id
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} model.Task
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	task, err := h.taskService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// List godoc
// @Summary List all tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} model.Task
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.taskService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// MyTasks godoc
// @Summary List tasks assigned to the current user
// @Tags tasks
// @Produce json
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks/my [get]
func (h *TaskHandler) MyTasks(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return httpError(apperrors.ErrUnauthorized)
	}
	tasks, err := h.taskService.ListByUser(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body UpdateTaskRequest true "Changes"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	input := service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.DueDate != nil {
		dueDate, err := parseDate(*req.DueDate)
		if err != nil {
			return err
		}
		input.DueDate = dueDate
	}

	task, err := h.taskService.Update(c.Request().Context(), id, input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// Assign godoc
// @Summary Assign a task to a user
// @Description The assignee receives a notification.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body AssignTaskRequest true "Assignee"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id}/assign [put]
func (h *TaskHandler) Assign(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AssignTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}

	task, err := h.taskService.Assign(c.Request().Context(), id, req.UserID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.taskService.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "task deleted successfully"})
}

// Notifications godoc
// @Summary List the current user's notifications
// @Tags tasks
// @Produce json
// @Success 200 {array} model.Notification
// @Failure 401 {object} errors.ErrorResponse
// @Router /notifications [get]
func (h *TaskHandler) Notifications(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return httpError(apperrors.ErrUnauthorized)
	}
	notifications, err := h.taskService.Notifications(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead godoc
// @Summary Mark a notification as read
// @Tags tasks
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /notifications/{id}/read [put]
func (h *TaskHandler) MarkNotificationRead(c echo.Context) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return httpError(apperrors.ErrUnauthorized)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.taskService.MarkNotificationRead(c.Request().Context(), id, user.ID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "notification marked as read"})
}
