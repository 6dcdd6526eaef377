package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/config"
	"tasktracker/internal/core/domain"
)

func TestBuildListQuery_NoFilter(t *testing.T) {
	query, args := buildListQuery(domain.TaskFilter{})

	assert.Equal(t, "SELECT "+taskColumns+" FROM tasks ORDER BY created_at DESC, id DESC", query)
	assert.Empty(t, args)
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	high := domain.TaskPriorityHigh
	done := domain.TaskStatusDone
	alice := "alice"
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.FixedZone("X", 3600))
	end := time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)

	query, args := buildListQuery(domain.TaskFilter{
		Priority:   &high,
		Status:     &done,
		AssignedTo: &alice,
		Start:      &start,
		End:        &end,
	})

	assert.Equal(t,
		"SELECT "+taskColumns+" FROM tasks WHERE priority = ? AND status = ? AND assigned_to = ? AND created_at >= ? AND created_at <= ? ORDER BY created_at DESC, id DESC",
		query,
	)
	assert.Equal(t, []any{"HIGH", "DONE", "alice", start.UTC(), end}, args)
}

func TestBuildListQuery_RebindForPostgres(t *testing.T) {
	high := domain.TaskPriorityHigh
	query, _ := buildListQuery(domain.TaskFilter{Priority: &high, AssignedTo: new(string)})

	rebound := sqlx.Rebind(sqlx.DOLLAR, query)

	assert.Contains(t, rebound, "priority = $1 AND assigned_to = $2")
}

func TestBuildUpdateQuery(t *testing.T) {
	title := "new"
	hours := decimal.RequireFromString("0")

	query, args := buildUpdateQuery("id-1", domain.UpdateTaskInput{
		Title:          &title,
		DueDateSet:     true,
		TagsSet:        true,
		Tags:           []any{},
		EstimatedHours: &hours,
	})

	assert.Equal(t, "UPDATE tasks SET title = ?, due_date = ?, tags = ?, estimated_hours = ? WHERE id = ?", query)
	require.Len(t, args, 5)
	assert.Equal(t, "new", args[0])
	assert.Equal(t, sql.NullTime{}, args[1])
	assert.Equal(t, jsonTags{}, args[2])
	assert.Equal(t, "0", args[3])
	assert.Equal(t, "id-1", args[4])
}

func TestJSONTags_Value(t *testing.T) {
	value, err := jsonTags(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	value, err = jsonTags{"a", 1.5, true}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a",1.5,true]`, value)
}

func TestJSONTags_Scan(t *testing.T) {
	var tags jsonTags

	require.NoError(t, tags.Scan([]byte(`["x","y"]`)))
	assert.Equal(t, jsonTags{"x", "y"}, tags)

	require.NoError(t, tags.Scan(`[]`))
	assert.Equal(t, jsonTags{}, tags)

	require.NoError(t, tags.Scan(`null`))
	assert.Equal(t, jsonTags{}, tags)

	require.NoError(t, tags.Scan(nil))
	assert.Equal(t, jsonTags{}, tags)

	assert.Error(t, tags.Scan(42))
	assert.Error(t, tags.Scan(`{"not":"a list"}`))
}

func TestMapTaskRowToDomainTask(t *testing.T) {
	created := time.Date(2026, 2, 13, 9, 0, 0, 0, time.FixedZone("X", 3600))
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	task, err := mapTaskRowToDomainTask(taskRow{
		ID:             "id-1",
		Title:          "t",
		Description:    "d",
		Priority:       "LOW",
		Status:         "IN_PROGRESS",
		CreatedAt:      created,
		DueDate:        sql.NullTime{Time: due, Valid: true},
		AssignedTo:     "alice",
		EstimatedHours: "2.5000",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TaskPriorityLow, task.Priority)
	assert.Equal(t, domain.TaskStatusInProgress, task.Status)
	assert.Equal(t, time.UTC, task.CreatedAt.Location())
	assert.True(t, created.Equal(task.CreatedAt))
	require.NotNil(t, task.DueDate)
	assert.True(t, due.Equal(*task.DueDate))
	assert.Equal(t, []any{}, task.Tags)
	assert.True(t, decimal.RequireFromString("2.5").Equal(task.EstimatedHours))

	_, err = mapTaskRowToDomainTask(taskRow{ID: "id-2", EstimatedHours: "abc"})
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	conf := &config.Config{
		DbDriver:   DriverMySQL,
		DbHost:     "db",
		DbPort:     "3306",
		DbUser:     "user",
		DbPassword: "secret",
		DbName:     "tasktracker",
	}

	dsn, err := DSN(conf)
	require.NoError(t, err)
	assert.Equal(t, "user:secret@tcp(db:3306)/tasktracker?"+defaultMySQLParams, dsn)

	conf.DbDriver = DriverPostgres
	conf.DbPort = "5432"
	conf.DbPassword = "p@ss"
	dsn, err = DSN(conf)
	require.NoError(t, err)
	assert.Equal(t, "postgres://user:p%40ss@db:5432/tasktracker?sslmode=disable", dsn)

	conf.DbParams = "sslmode=require"
	dsn, err = DSN(conf)
	require.NoError(t, err)
	assert.Contains(t, dsn, "?sslmode=require")

	conf.DbDriver = "sqlite"
	_, err = DSN(conf)
	assert.Error(t, err)
}
