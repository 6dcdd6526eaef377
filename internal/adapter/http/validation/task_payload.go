package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"tasktracker/internal/core/domain"
)

var (
	ErrInvalidTaskPayload = errors.New("invalid task payload")
	ErrInvalidTaskFilter  = errors.New("invalid task filter")
)

// DecodeTaskPayload reads a JSON object without binding it to a struct, so
// the service sees exactly which keys the client sent. Numbers stay
// json.Number to keep their literal digits.
func DecodeTaskPayload(body io.Reader) (domain.TaskPayload, error) {
	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTaskPayload, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidTaskPayload)
	}
	if decoder.More() {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidTaskPayload)
	}

	return domain.TaskPayload(payload), nil
}

// BuildTaskFilter reads the listing query string. Blank parameters are
// ignored. A date-only end bound covers that whole day.
func BuildTaskFilter(query url.Values) (domain.TaskFilter, error) {
	var filter domain.TaskFilter

	if value := strings.TrimSpace(query.Get("priority")); value != "" {
		priority, err := domain.ParsePriority(value)
		if err != nil {
			return domain.TaskFilter{}, fmt.Errorf("%w: %v", ErrInvalidTaskFilter, err)
		}
		filter.Priority = &priority
	}

	if value := strings.TrimSpace(query.Get("status")); value != "" {
		status, err := domain.ParseStatus(value)
		if err != nil {
			return domain.TaskFilter{}, fmt.Errorf("%w: %v", ErrInvalidTaskFilter, err)
		}
		filter.Status = &status
	}

	if value := strings.TrimSpace(query.Get("assignedTo")); value != "" {
		filter.AssignedTo = &value
	}

	if value := strings.TrimSpace(query.Get("start")); value != "" {
		start, err := domain.ParseTimestamp(value)
		if err != nil {
			return domain.TaskFilter{}, fmt.Errorf("%w: start: %v", ErrInvalidTaskFilter, err)
		}
		filter.Start = &start
	}

	if value := strings.TrimSpace(query.Get("end")); value != "" {
		end, err := domain.ParseTimestamp(value)
		if err != nil {
			return domain.TaskFilter{}, fmt.Errorf("%w: end: %v", ErrInvalidTaskFilter, err)
		}
		if domain.IsDateOnly(value) {
			end = end.Add(24*time.Hour - time.Microsecond)
		}
		filter.End = &end
	}

	return filter, nil
}
