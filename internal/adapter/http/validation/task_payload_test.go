package validation

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/core/domain"
)

func TestDecodeTaskPayload(t *testing.T) {
	payload, err := DecodeTaskPayload(strings.NewReader(`{"title":"t","estimatedHours":2.50,"dueDate":null,"tags":["a"]}`))
	require.NoError(t, err)

	assert.Equal(t, "t", payload["title"])
	assert.Equal(t, json.Number("2.50"), payload["estimatedHours"])
	assert.Contains(t, payload, "dueDate")
	assert.Nil(t, payload["dueDate"])
	assert.Equal(t, []any{"a"}, payload["tags"])
}

func TestDecodeTaskPayload_Rejects(t *testing.T) {
	for _, body := range []string{``, `null`, `[]`, `"text"`, `{"title":`, `{} {}`} {
		_, err := DecodeTaskPayload(strings.NewReader(body))
		assert.ErrorIs(t, err, ErrInvalidTaskPayload, body)
	}
}

func TestBuildTaskFilter_Empty(t *testing.T) {
	filter, err := BuildTaskFilter(url.Values{"priority": {" "}, "assignedTo": {""}})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskFilter{}, filter)
}

func TestBuildTaskFilter_AllFields(t *testing.T) {
	filter, err := BuildTaskFilter(url.Values{
		"priority":   {"high"},
		"status":     {"DONE"},
		"assignedTo": {" alice "},
		"start":      {"2026-02-01T10:00:00Z"},
		"end":        {"2026-02-28"},
	})
	require.NoError(t, err)

	require.NotNil(t, filter.Priority)
	assert.Equal(t, domain.TaskPriorityHigh, *filter.Priority)
	require.NotNil(t, filter.Status)
	assert.Equal(t, domain.TaskStatusDone, *filter.Status)
	require.NotNil(t, filter.AssignedTo)
	assert.Equal(t, "alice", *filter.AssignedTo)
	require.NotNil(t, filter.Start)
	assert.True(t, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC).Equal(*filter.Start))
	require.NotNil(t, filter.End)
	assert.True(t, time.Date(2026, 2, 28, 23, 59, 59, 999999000, time.UTC).Equal(*filter.End))
}

func TestBuildTaskFilter_TimestampEndIsExact(t *testing.T) {
	filter, err := BuildTaskFilter(url.Values{"end": {"2026-02-28T12:00:00Z"}})
	require.NoError(t, err)
	require.NotNil(t, filter.End)
	assert.True(t, time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC).Equal(*filter.End))
}

func TestBuildTaskFilter_Rejects(t *testing.T) {
	cases := map[string]url.Values{
		"priority": {"priority": {"urgent"}},
		"status":   {"status": {"blocked"}},
		"start":    {"start": {"yesterday"}},
		"end":      {"end": {"2026-02-30"}},
	}

	for name, query := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildTaskFilter(query)
			assert.ErrorIs(t, err, ErrInvalidTaskFilter)
		})
	}
}
