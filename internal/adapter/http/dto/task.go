package dto

import "encoding/json"

// TaskItem is the wire shape of a task. EstimatedHours is emitted as a bare
// JSON number carrying the stored decimal digits.
type TaskItem struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Priority       string      `json:"priority"`
	Status         string      `json:"status"`
	CreatedAt      string      `json:"createdAt"`
	DueDate        *string     `json:"dueDate"`
	AssignedTo     string      `json:"assignedTo"`
	Tags           []any       `json:"tags"`
	EstimatedHours json.Number `json:"estimatedHours"`
}

type DeletedTask struct {
	ID string `json:"id"`
}
