package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository}
}

// CreateTask normalizes payload, filling defaults for absent fields, and
// inserts it. Nothing is written when normalization fails.
func (s *TaskService) CreateTask(ctx context.Context, payload domain.TaskPayload) (domain.Task, error) {
	input, err := normalizeCreateInput(payload)
	if err != nil {
		return domain.Task{}, err
	}

	task, err := s.taskRepository.Create(ctx, input)
	if err != nil {
		return domain.Task{}, err
	}

	zap.L().Debug("task created", zap.String("task_id", task.ID))
	return task, nil
}

// ListTasks returns the tasks matching every set filter field, most recently
// created first.
func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, domain.NewValidationError("priority", "unknown priority")
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}
	return s.taskRepository.List(ctx, filter)
}

// GetTask returns nil without an error when no task has the id.
func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	taskID, err := normalizeTaskID(id)
	if err != nil {
		return nil, err
	}
	return s.taskRepository.GetByID(ctx, taskID)
}

// UpdateTask applies only the fields present in payload. It returns nil
// without an error when no task has the id.
func (s *TaskService) UpdateTask(ctx context.Context, id string, payload domain.TaskPayload) (*domain.Task, error) {
	taskID, err := normalizeTaskID(id)
	if err != nil {
		return nil, err
	}

	input, err := normalizeUpdateInput(payload)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepository.Update(ctx, taskID, input)
	if err != nil {
		return nil, err
	}
	if task == nil {
		zap.L().Debug("task to update not found", zap.String("task_id", taskID))
	}
	return task, nil
}

// DeleteTask reports the id whether or not a row existed.
func (s *TaskService) DeleteTask(ctx context.Context, id string) (domain.DeletedTask, error) {
	taskID, err := normalizeTaskID(id)
	if err != nil {
		return domain.DeletedTask{}, err
	}

	if err := s.taskRepository.Delete(ctx, taskID); err != nil {
		return domain.DeletedTask{}, err
	}
	return domain.DeletedTask{ID: taskID}, nil
}

func (s *TaskService) ListTasksByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	return s.ListTasks(ctx, domain.TaskFilter{Status: &status})
}

func (s *TaskService) ListTasksByPriority(ctx context.Context, priority domain.TaskPriority) ([]domain.Task, error) {
	return s.ListTasks(ctx, domain.TaskFilter{Priority: &priority})
}

func (s *TaskService) ListTasksByAssignee(ctx context.Context, assignee string) ([]domain.Task, error) {
	return s.ListTasks(ctx, domain.TaskFilter{AssignedTo: &assignee})
}

func normalizeTaskID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidTaskID, id)
	}
	return parsed.String(), nil
}

var _ ports.TaskService = (*TaskService)(nil)
