package mapper

import (
	"encoding/json"
	"time"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Priority:       string(task.Priority),
		Status:         string(task.Status),
		CreatedAt:      task.CreatedAt.UTC().Format(time.RFC3339Nano),
		AssignedTo:     task.AssignedTo,
		Tags:           task.Tags,
		EstimatedHours: json.Number(task.EstimatedHours.String()),
	}

	if item.Tags == nil {
		item.Tags = []any{}
	}

	if task.DueDate != nil {
		value := task.DueDate.UTC().Format(time.RFC3339Nano)
		item.DueDate = &value
	}

	return item
}

func ToDeletedTask(deleted domain.DeletedTask) dto.DeletedTask {
	return dto.DeletedTask{ID: deleted.ID}
}
