package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "apoteka/internal/errors"
	"apoteka/internal/model"
	"apoteka/internal/repository"
)

// CreateTaskInput carries the fields for a new task.
type CreateTaskInput struct {
	Title        string
	Description  string
	Status       model.TaskStatus
	DueDate      *time.Time
	AssignedToID *uint
}

// UpdateTaskInput carries partial task changes; nil fields are untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
	DueDate     *time.Time
}

// TaskService handles staff tasks and their notifications.
type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (*model.Task, error)
	Get(ctx context.Context, id uint) (*model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Task, error)
	Update(ctx context.Context, id uint, input UpdateTaskInput) (*model.Task, error)
	Assign(ctx context.Context, taskID, userID uint) (*model.Task, error)
	Delete(ctx context.Context, id uint) error
	Notifications(ctx context.Context, userID uint) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID uint) error
}

type taskService struct {
	taskRepo         repository.TaskRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

// NewTaskService creates a new task service.
func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
) TaskService {
	return &taskService{
		taskRepo:         taskRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *taskService) Create(ctx context.Context, input CreateTaskInput) (*model.Task, error) {
	status := input.Status
	if status == "" {
		status = model.TaskStatusPending
	}
	task := &model.Task{
		Title:        input.Title,
		Description:  input.Description,
		Status:       status,
		DueDate:      input.DueDate,
		AssignedToID: input.AssignedToID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	if task.AssignedToID != nil {
		s.notifyAssignment(ctx, task, *task.AssignedToID)
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.List(ctx)
}

func (s *taskService) ListByUser(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

func (s *taskService) Update(ctx context.Context, id uint, input UpdateTaskInput) (*model.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Assign hands a task to a user and notifies them.
func (s *taskService) Assign(ctx context.Context, taskID, userID uint) (*model.Task, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	task, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.AssignedToID = &user.ID
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("assign task: %w", err)
	}
	s.notifyAssignment(ctx, task, user.ID)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, id)
}

func (s *taskService) Notifications(ctx context.Context, userID uint) ([]model.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID)
}

func (s *taskService) MarkNotificationRead(ctx context.Context, id, userID uint) error {
	if err := s.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return err
	}
	return nil
}

// notifyAssignment records a notification for the assignee. A failed
// notification does not fail the assignment.
func (s *taskService) notifyAssignment(ctx context.Context, task *model.Task, userID uint) {
	_ = s.notificationRepo.Create(ctx, &model.Notification{
		UserID:  userID,
		TaskID:  &task.ID,
		Message: fmt.Sprintf("You have been assigned a task: %s", task.Title),
	})
}
