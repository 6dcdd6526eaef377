package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

const (
	MaxTitleLength    = 255
	MaxAssigneeLength = 255
	DefaultAssignee   = "Unassigned"
)

// DefaultEstimatedHours is applied on create when the client sends no estimate.
var DefaultEstimatedHours = decimal.NewFromInt(1)

// Priorities lists the priority domain in ascending order.
func Priorities() []TaskPriority {
	return []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
}

// Statuses lists the status domain in workflow order.
func Statuses() []TaskStatus {
	return []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusDone}
}

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// ParsePriority accepts any casing of a priority name.
func ParsePriority(value string) (TaskPriority, error) {
	priority := TaskPriority(strings.ToUpper(strings.TrimSpace(value)))
	if !priority.Valid() {
		return "", NewValidationError("priority", "must be one of "+joinValues(Priorities()))
	}
	return priority, nil
}

// ParseStatus accepts any casing of a status name.
func ParseStatus(value string) (TaskStatus, error) {
	status := TaskStatus(strings.ToUpper(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", NewValidationError("status", "must be one of "+joinValues(Statuses()))
	}
	return status, nil
}

func joinValues[T ~string](values []T) string {
	names := make([]string, 0, len(values))
	for _, value := range values {
		names = append(names, string(value))
	}
	return strings.Join(names, ", ")
}

// PriorityFromUrgency maps the legacy free-text urgency field onto a
// priority. It is total: non-strings and unknown words yield MEDIUM.
func PriorityFromUrgency(urgency any) TaskPriority {
	value, ok := urgency.(string)
	if !ok {
		return TaskPriorityMedium
	}

	switch strings.ToLower(value) {
	case "high":
		return TaskPriorityHigh
	case "low":
		return TaskPriorityLow
	default:
		return TaskPriorityMedium
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var (
	titleRule    = "required,max=" + strconv.Itoa(MaxTitleLength)
	assigneeRule = "required,max=" + strconv.Itoa(MaxAssigneeLength)
)

// ValidTitle checks the trimmed title; length is counted in characters.
func ValidTitle(title string) bool {
	return validate.Var(strings.TrimSpace(title), titleRule) == nil
}

func ValidDescription(description string) bool {
	return validate.Var(strings.TrimSpace(description), "required") == nil
}

func ValidAssignee(assignee string) bool {
	return validate.Var(strings.TrimSpace(assignee), assigneeRule) == nil
}

// Estimates fit DECIMAL(12,4): at most eight integer digits and four places.
const (
	EstimatedHoursScale = 4
	// maxHoursExponent is checked before any rescaling.
	maxHoursExponent = 64
)

var MaxEstimatedHours = decimal.RequireFromString("99999999.9999")

// ValidEstimatedHours reports whether hours is non-negative and fits the
// stored precision without rounding.
func ValidEstimatedHours(hours decimal.Decimal) bool {
	if exp := hours.Exponent(); exp > maxHoursExponent || exp < -maxHoursExponent {
		return false
	}
	if hours.IsNegative() || hours.GreaterThan(MaxEstimatedHours) {
		return false
	}
	return hours.Equal(hours.Truncate(EstimatedHoursScale))
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp reads the timestamp formats clients send. Values without a
// zone are taken as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

// IsDateOnly reports whether value carries a calendar day without a time.
func IsDateOnly(value string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	return err == nil
}

type Task struct {
	ID             string
	Title          string
	Description    string
	Priority       TaskPriority
	Status         TaskStatus
	CreatedAt      time.Time
	DueDate        *time.Time
	AssignedTo     string
	Tags           []any
	EstimatedHours decimal.Decimal
}

// TaskPayload is a request body as decoded from JSON, before normalization.
type TaskPayload map[string]any

type CreateTaskInput struct {
	Title          string
	Description    string
	Priority       TaskPriority
	Status         TaskStatus
	DueDate        *time.Time
	AssignedTo     string
	Tags           []any
	EstimatedHours decimal.Decimal
}

// UpdateTaskInput holds only the fields a client supplied. DueDate and Tags
// use Set flags since nil is a meaningful new value for them.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Priority       *TaskPriority
	Status         *TaskStatus
	DueDate        *time.Time
	DueDateSet     bool
	AssignedTo     *string
	Tags           []any
	TagsSet        bool
	EstimatedHours *decimal.Decimal
}

func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil &&
		in.Description == nil &&
		in.Priority == nil &&
		in.Status == nil &&
		!in.DueDateSet &&
		in.AssignedTo == nil &&
		!in.TagsSet &&
		in.EstimatedHours == nil
}

// TaskFilter narrows a listing. Nil fields do not constrain; Start and End
// are inclusive bounds on CreatedAt.
type TaskFilter struct {
	Priority   *TaskPriority
	Status     *TaskStatus
	AssignedTo *string
	Start      *time.Time
	End        *time.Time
}

func (f TaskFilter) Matches(task Task) bool {
	if f.Priority != nil && task.Priority != *f.Priority {
		return false
	}
	if f.Status != nil && task.Status != *f.Status {
		return false
	}
	if f.AssignedTo != nil && task.AssignedTo != *f.AssignedTo {
		return false
	}
	if f.Start != nil && task.CreatedAt.Before(*f.Start) {
		return false
	}
	if f.End != nil && task.CreatedAt.After(*f.End) {
		return false
	}
	return true
}

type DeletedTask struct {
	ID string
}
