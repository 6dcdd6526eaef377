package ports

import (
	"context"

	"tasktracker/internal/core/domain"
)

// TaskRepository reports absence as a nil task with a nil error.
type TaskRepository interface {
	Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	CreateTask(ctx context.Context, payload domain.TaskPayload) (domain.Task, error)
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, payload domain.TaskPayload) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) (domain.DeletedTask, error)
	ListTasksByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error)
	ListTasksByPriority(ctx context.Context, priority domain.TaskPriority) ([]domain.Task, error)
	ListTasksByAssignee(ctx context.Context, assignee string) ([]domain.Task, error)
}
