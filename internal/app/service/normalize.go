package service

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tasktracker/internal/core/domain"
)

// Payload keys. Snake-case spellings are accepted for clients that echo the
// column names back.
var (
	keyTitle          = []string{"title"}
	keyDescription    = []string{"description"}
	keyPriority       = []string{"priority"}
	keyUrgency        = []string{"urgency"}
	keyStatus         = []string{"status"}
	keyDueDate        = []string{"dueDate", "due_date"}
	keyAssignedTo     = []string{"assignedTo", "assigned_to"}
	keyTags           = []string{"tags"}
	keyEstimatedHours = []string{"estimatedHours", "estimated_hours"}
)

// lookup returns the first supplied value for a field. Null and blank
// strings count as not supplied.
func lookup(payload domain.TaskPayload, keys []string) (any, bool) {
	for _, key := range keys {
		raw, ok := payload[key]
		if !ok || raw == nil {
			continue
		}
		if text, isString := raw.(string); isString && strings.TrimSpace(text) == "" {
			continue
		}
		return raw, true
	}
	return nil, false
}

// hasKey reports whether any spelling of the field appears, null included.
func hasKey(payload domain.TaskPayload, keys []string) bool {
	for _, key := range keys {
		if _, ok := payload[key]; ok {
			return true
		}
	}
	return false
}

func fieldName(keys []string) string {
	return keys[0]
}

func lookupString(payload domain.TaskPayload, keys []string) (string, bool, error) {
	raw, ok := lookup(payload, keys)
	if !ok {
		return "", false, nil
	}
	value, isString := raw.(string)
	if !isString {
		return "", true, domain.NewValidationError(fieldName(keys), "must be a string")
	}
	return value, true, nil
}

func normalizeCreateInput(payload domain.TaskPayload) (domain.CreateTaskInput, error) {
	title, err := normalizeTitle(payload, true)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	description, err := normalizeDescription(payload, true)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	input := domain.CreateTaskInput{
		Title:          *title,
		Description:    *description,
		Priority:       domain.TaskPriorityMedium,
		Status:         domain.TaskStatusTodo,
		AssignedTo:     domain.DefaultAssignee,
		Tags:           []any{},
		EstimatedHours: domain.DefaultEstimatedHours,
	}

	if priority, err := normalizePriority(payload); err != nil {
		return domain.CreateTaskInput{}, err
	} else if priority != nil {
		input.Priority = *priority
	}

	if status, err := normalizeStatus(payload); err != nil {
		return domain.CreateTaskInput{}, err
	} else if status != nil {
		input.Status = *status
	}

	if assignee, err := normalizeAssignee(payload); err != nil {
		return domain.CreateTaskInput{}, err
	} else if assignee != nil {
		input.AssignedTo = *assignee
	}

	if hours, err := normalizeEstimatedHours(payload); err != nil {
		return domain.CreateTaskInput{}, err
	} else if hours != nil {
		input.EstimatedHours = *hours
	}

	if tags, ok, err := normalizeTags(payload); err != nil {
		return domain.CreateTaskInput{}, err
	} else if ok {
		input.Tags = tags
	}

	dueDate, _, err := normalizeDueDate(payload)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}
	input.DueDate = dueDate

	return input, nil
}

func normalizeUpdateInput(payload domain.TaskPayload) (domain.UpdateTaskInput, error) {
	var (
		input domain.UpdateTaskInput
		err   error
	)

	if input.Title, err = normalizeTitle(payload, false); err != nil {
		return domain.UpdateTaskInput{}, err
	}
	if input.Description, err = normalizeDescription(payload, false); err != nil {
		return domain.UpdateTaskInput{}, err
	}
	if input.Priority, err = normalizePriority(payload); err != nil {
		return domain.UpdateTaskInput{}, err
	}
	if input.Status, err = normalizeStatus(payload); err != nil {
		return domain.UpdateTaskInput{}, err
	}
	if input.AssignedTo, err = normalizeAssignee(payload); err != nil {
		return domain.UpdateTaskInput{}, err
	}
	if input.EstimatedHours, err = normalizeEstimatedHours(payload); err != nil {
		return domain.UpdateTaskInput{}, err
	}
	if input.Tags, input.TagsSet, err = normalizeTags(payload); err != nil {
		return domain.UpdateTaskInput{}, err
	}
	if input.DueDate, input.DueDateSet, err = normalizeDueDate(payload); err != nil {
		return domain.UpdateTaskInput{}, err
	}

	if input.IsEmpty() {
		return domain.UpdateTaskInput{}, domain.NewValidationError("", "no updatable fields supplied")
	}
	return input, nil
}

func normalizeTitle(payload domain.TaskPayload, required bool) (*string, error) {
	value, ok, err := lookupString(payload, keyTitle)
	if err != nil {
		return nil, err
	}
	if !ok {
		if required {
			return nil, domain.NewValidationError("title", "is required")
		}
		return nil, nil
	}
	if !domain.ValidTitle(value) {
		return nil, domain.NewValidationError("title", "must be at most 255 characters")
	}
	title := strings.TrimSpace(value)
	return &title, nil
}

// normalizeDescription keeps the text as sent; only blankness is rejected.
func normalizeDescription(payload domain.TaskPayload, required bool) (*string, error) {
	value, ok, err := lookupString(payload, keyDescription)
	if err != nil {
		return nil, err
	}
	if !ok {
		if required {
			return nil, domain.NewValidationError("description", "is required")
		}
		return nil, nil
	}
	if !domain.ValidDescription(value) {
		return nil, domain.NewValidationError("description", "must not be blank")
	}
	return &value, nil
}

// normalizePriority prefers an explicit priority over the legacy urgency
// field. Nil means neither was supplied.
func normalizePriority(payload domain.TaskPayload) (*domain.TaskPriority, error) {
	if value, ok, err := lookupString(payload, keyPriority); err != nil {
		return nil, err
	} else if ok {
		priority, err := domain.ParsePriority(value)
		if err != nil {
			return nil, err
		}
		return &priority, nil
	}

	if urgency, ok := lookup(payload, keyUrgency); ok {
		priority := domain.PriorityFromUrgency(urgency)
		return &priority, nil
	}
	return nil, nil
}

func normalizeStatus(payload domain.TaskPayload) (*domain.TaskStatus, error) {
	value, ok, err := lookupString(payload, keyStatus)
	if err != nil || !ok {
		return nil, err
	}
	status, err := domain.ParseStatus(value)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func normalizeAssignee(payload domain.TaskPayload) (*string, error) {
	value, ok, err := lookupString(payload, keyAssignedTo)
	if err != nil || !ok {
		return nil, err
	}
	if !domain.ValidAssignee(value) {
		return nil, domain.NewValidationError("assignedTo", "must be at most 255 characters")
	}
	assignee := strings.TrimSpace(value)
	return &assignee, nil
}

func normalizeEstimatedHours(payload domain.TaskPayload) (*decimal.Decimal, error) {
	raw, ok := lookup(payload, keyEstimatedHours)
	if !ok {
		return nil, nil
	}
	hours, err := toDecimal(raw)
	if err != nil {
		return nil, domain.NewValidationError("estimatedHours", "must be a number")
	}
	if hours.IsNegative() {
		return nil, domain.NewValidationError("estimatedHours", "must not be negative")
	}
	if !domain.ValidEstimatedHours(hours) {
		return nil, domain.NewValidationError("estimatedHours",
			"must be at most "+domain.MaxEstimatedHours.String()+" with at most 4 decimal places")
	}
	return &hours, nil
}

var errNotANumber = errors.New("not a number")

// toDecimal converts the numeric shapes a decoded body can carry into an
// exact decimal. json.Number and strings keep their literal digits.
func toDecimal(raw any) (decimal.Decimal, error) {
	switch value := raw.(type) {
	case decimal.Decimal:
		return value, nil
	case json.Number:
		return decimal.NewFromString(value.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(value))
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return decimal.Decimal{}, errNotANumber
		}
		return decimal.NewFromFloat(value), nil
	case float32:
		if math.IsNaN(float64(value)) || math.IsInf(float64(value), 0) {
			return decimal.Decimal{}, errNotANumber
		}
		return decimal.NewFromFloat32(value), nil
	case int:
		return decimal.NewFromInt(int64(value)), nil
	case int32:
		return decimal.NewFromInt32(value), nil
	case int64:
		return decimal.NewFromInt(value), nil
	default:
		return decimal.Decimal{}, errNotANumber
	}
}

// normalizeTags reports ok when the client supplied a list, empty included.
func normalizeTags(payload domain.TaskPayload) ([]any, bool, error) {
	raw, ok := lookup(payload, keyTags)
	if !ok {
		return nil, false, nil
	}

	switch value := raw.(type) {
	case []any:
		tags := make([]any, len(value))
		copy(tags, value)
		return tags, true, nil
	case []string:
		tags := make([]any, 0, len(value))
		for _, tag := range value {
			tags = append(tags, tag)
		}
		return tags, true, nil
	default:
		return nil, false, domain.NewValidationError("tags", "must be a list")
	}
}

// normalizeDueDate returns set=true whenever the key is present, so an
// explicit null or blank string clears the date on update.
func normalizeDueDate(payload domain.TaskPayload) (*time.Time, bool, error) {
	if !hasKey(payload, keyDueDate) {
		return nil, false, nil
	}

	raw, ok := lookup(payload, keyDueDate)
	if !ok {
		return nil, true, nil
	}

	switch value := raw.(type) {
	case time.Time:
		dueDate := value.UTC()
		return &dueDate, true, nil
	case string:
		dueDate, err := domain.ParseTimestamp(value)
		if err != nil {
			return nil, false, domain.NewValidationError("dueDate", "must be a valid date")
		}
		return &dueDate, true, nil
	default:
		return nil, false, domain.NewValidationError("dueDate", "must be a valid date")
	}
}
