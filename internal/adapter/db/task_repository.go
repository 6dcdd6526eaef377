package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const taskColumns = `id, title, description, priority, status, created_at, due_date, assigned_to, tags, estimated_hours`

const insertTaskQuery = `
INSERT INTO tasks (id, title, description, priority, status, created_at, due_date, assigned_to, tags, estimated_hours)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const getTaskQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

const deleteTaskQuery = `DELETE FROM tasks WHERE id = ?`

// Queries are written with ? placeholders and rebound for the driver in use,
// so the same statements run on MySQL and PostgreSQL.
type TaskRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type taskRow struct {
	ID             string       `db:"id"`
	Title          string       `db:"title"`
	Description    string       `db:"description"`
	Priority       string       `db:"priority"`
	Status         string       `db:"status"`
	CreatedAt      time.Time    `db:"created_at"`
	DueDate        sql.NullTime `db:"due_date"`
	AssignedTo     string       `db:"assigned_to"`
	Tags           jsonTags     `db:"tags"`
	EstimatedHours string       `db:"estimated_hours"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return NewTaskRepositoryWithClock(db, time.Now)
}

func NewTaskRepositoryWithClock(db *sqlx.DB, now func() time.Time) *TaskRepository {
	return &TaskRepository{db: db, now: now}
}

func (r *TaskRepository) Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	id := uuid.NewString()
	// Both engines keep microseconds; truncating keeps the returned value
	// equal to what a later read sees.
	createdAt := r.now().UTC().Truncate(time.Microsecond)

	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertTaskQuery),
		id,
		input.Title,
		input.Description,
		string(input.Priority),
		string(input.Status),
		createdAt,
		nullTime(input.DueDate),
		input.AssignedTo,
		jsonTags(input.Tags),
		input.EstimatedHours.String(),
	)
	if err != nil {
		return domain.Task{}, &domain.StorageError{Op: "create", Err: err}
	}

	task, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if task == nil {
		return domain.Task{}, &domain.StorageError{Op: "create", Err: fmt.Errorf("inserted task %s not readable", id)}
	}
	return *task, nil
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	query, args := buildListQuery(filter)

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, &domain.StorageError{Op: "list", Err: err}
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRowToDomainTask(row)
		if err != nil {
			return nil, &domain.StorageError{Op: "list", Err: err}
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(getTaskQuery), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get", Err: err}
	}

	task, err := mapTaskRowToDomainTask(row)
	if err != nil {
		return nil, &domain.StorageError{Op: "get", Err: err}
	}
	return &task, nil
}

// Update rereads the row afterwards: MySQL reports zero affected rows for an
// update that changes nothing, so RowsAffected cannot detect a missing task.
func (r *TaskRepository) Update(ctx context.Context, id string, input domain.UpdateTaskInput) (*domain.Task, error) {
	query, args := buildUpdateQuery(id, input)
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return nil, &domain.StorageError{Op: "update", Err: err}
	}
	return r.GetByID(ctx, id)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(deleteTaskQuery), id); err != nil {
		return &domain.StorageError{Op: "delete", Err: err}
	}
	return nil
}

func buildListQuery(filter domain.TaskFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, string(*filter.Priority))
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.AssignedTo != nil {
		conditions = append(conditions, "assigned_to = ?")
		args = append(args, *filter.AssignedTo)
	}
	if filter.Start != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filter.Start.UTC())
	}
	if filter.End != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, filter.End.UTC())
	}

	var query strings.Builder
	query.WriteString("SELECT " + taskColumns + " FROM tasks")
	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC, id DESC")
	return query.String(), args
}

func buildUpdateQuery(id string, input domain.UpdateTaskInput) (string, []any) {
	var (
		assignments []string
		args        []any
	)

	set := func(column string, value any) {
		assignments = append(assignments, column+" = ?")
		args = append(args, value)
	}

	if input.Title != nil {
		set("title", *input.Title)
	}
	if input.Description != nil {
		set("description", *input.Description)
	}
	if input.Priority != nil {
		set("priority", string(*input.Priority))
	}
	if input.Status != nil {
		set("status", string(*input.Status))
	}
	if input.DueDateSet {
		set("due_date", nullTime(input.DueDate))
	}
	if input.AssignedTo != nil {
		set("assigned_to", *input.AssignedTo)
	}
	if input.TagsSet {
		set("tags", jsonTags(input.Tags))
	}
	if input.EstimatedHours != nil {
		set("estimated_hours", input.EstimatedHours.String())
	}

	args = append(args, id)
	return "UPDATE tasks SET " + strings.Join(assignments, ", ") + " WHERE id = ?", args
}

func mapTaskRowToDomainTask(row taskRow) (domain.Task, error) {
	hours, err := decimal.NewFromString(row.EstimatedHours)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s: estimated_hours %q: %w", row.ID, row.EstimatedHours, err)
	}

	task := domain.Task{
		ID:             row.ID,
		Title:          row.Title,
		Description:    row.Description,
		Priority:       domain.TaskPriority(row.Priority),
		Status:         domain.TaskStatus(row.Status),
		CreatedAt:      row.CreatedAt.UTC(),
		AssignedTo:     row.AssignedTo,
		Tags:           []any(row.Tags),
		EstimatedHours: hours,
	}
	if task.Tags == nil {
		task.Tags = []any{}
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time.UTC()
		task.DueDate = &value
	}

	return task, nil
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: value.UTC(), Valid: true}
}

// jsonTags stores the tag list in a JSON column. It is written as text so
// PostgreSQL casts it to jsonb instead of receiving bytea.
type jsonTags []any

func (t jsonTags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	encoded, err := json.Marshal([]any(t))
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

func (t *jsonTags) Scan(src any) error {
	var raw []byte
	switch value := src.(type) {
	case nil:
		*t = jsonTags{}
		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("unsupported tags column type %T", src)
	}

	var tags []any
	if err := json.Unmarshal(raw, &tags); err != nil {
		return err
	}
	if tags == nil {
		tags = []any{}
	}
	*t = tags
	return nil
}
