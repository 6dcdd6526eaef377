// Package memory keeps tasks in process memory. It backs DB_DRIVER=memory
// and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
	now   func() time.Time
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository() *TaskRepository {
	return NewTaskRepositoryWithClock(time.Now)
}

func NewTaskRepositoryWithClock(now func() time.Time) *TaskRepository {
	return &TaskRepository{
		tasks: make(map[string]domain.Task),
		now:   now,
	}
}

// PingContext lets the health handler treat this repository like a database.
func (r *TaskRepository) PingContext(context.Context) error {
	return nil
}

func (r *TaskRepository) Create(_ context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	task := domain.Task{
		ID:             uuid.NewString(),
		Title:          input.Title,
		Description:    input.Description,
		Priority:       input.Priority,
		Status:         input.Status,
		CreatedAt:      r.now().UTC().Truncate(time.Microsecond),
		DueDate:        copyTime(input.DueDate),
		AssignedTo:     input.AssignedTo,
		Tags:           copyTags(input.Tags),
		EstimatedHours: input.EstimatedHours,
	}

	r.mu.Lock()
	r.tasks[task.ID] = task
	r.mu.Unlock()

	return cloneTask(task), nil
}

func (r *TaskRepository) List(_ context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if filter.Matches(task) {
			tasks = append(tasks, cloneTask(task))
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (r *TaskRepository) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	found := cloneTask(task)
	return &found, nil
}

func (r *TaskRepository) Update(_ context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.DueDateSet {
		task.DueDate = copyTime(input.DueDate)
	}
	if input.AssignedTo != nil {
		task.AssignedTo = *input.AssignedTo
	}
	if input.TagsSet {
		task.Tags = copyTags(input.Tags)
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = *input.EstimatedHours
	}

	r.tasks[id] = task
	updated := cloneTask(task)
	return &updated, nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.tasks, id)
	r.mu.Unlock()
	return nil
}

func cloneTask(task domain.Task) domain.Task {
	task.DueDate = copyTime(task.DueDate)
	task.Tags = copyTags(task.Tags)
	return task
}

func copyTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func copyTags(tags []any) []any {
	copied := make([]any, len(tags))
	copy(copied, tags)
	return copied
}
