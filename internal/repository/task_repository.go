package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/winnstorm/reserva-teco/internal/database"
	"github.com/winnstorm/reserva-teco/internal/models"
)

// ErrTaskNotFound is returned when no task exists for a given id
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles database operations for queued tasks. It is the
// durable source of truth for task status queries; every status transition
// is a single atomic row update.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, task_id, kind, status, request_json, result_json, error_message, created_at, completed_at`

// Create persists a new task in PENDING state
func (r *TaskRepository) Create(task *models.Task) error {
	query := `
		INSERT INTO tasks (task_id, kind, status, request_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		task.TaskID,
		task.Kind,
		task.Status,
		task.RequestJSON,
		task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	task.ID = id
	return nil
}

// GetByID retrieves a task by its public id
func (r *TaskRepository) GetByID(taskID string) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = ?`

	task, err := scanTask(r.db.QueryRow(query, taskID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// List retrieves tasks with an optional status filter, newest first
func (r *TaskRepository) List(status string, limit int, offset int) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`

	args := []interface{}{}
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// ListPendingIDs returns the public ids of all PENDING tasks in submission
// order. Used at startup to rebuild the in-memory queue.
func (r *TaskRepository) ListPendingIDs() ([]string, error) {
	rows, err := r.db.Query(
		"SELECT task_id FROM tasks WHERE status = ? ORDER BY id ASC",
		models.TaskStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending tasks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan pending task id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// MarkProcessing transitions a task to PROCESSING
func (r *TaskRepository) MarkProcessing(taskID string) error {
	query := `UPDATE tasks SET status = ? WHERE task_id = ?`

	_, err := r.db.Exec(query, models.TaskStatusProcessing, taskID)
	if err != nil {
		return fmt.Errorf("failed to mark task as processing: %w", err)
	}

	return nil
}

// MarkCompleted transitions a task to COMPLETED with its result payload
func (r *TaskRepository) MarkCompleted(taskID string, resultJSON string) error {
	query := `
		UPDATE tasks
		SET status = ?, result_json = ?, completed_at = ?
		WHERE task_id = ?
	`

	_, err := r.db.Exec(query, models.TaskStatusCompleted, resultJSON, time.Now().UTC(), taskID)
	if err != nil {
		return fmt.Errorf("failed to mark task as completed: %w", err)
	}

	return nil
}

// MarkFailed transitions a task to FAILED with an error message
func (r *TaskRepository) MarkFailed(taskID string, errorMessage string) error {
	query := `
		UPDATE tasks
		SET status = ?, error_message = ?, completed_at = ?
		WHERE task_id = ?
	`

	_, err := r.db.Exec(query, models.TaskStatusFailed, errorMessage, time.Now().UTC(), taskID)
	if err != nil {
		return fmt.Errorf("failed to mark task as failed: %w", err)
	}

	return nil
}

// FailInterrupted fails every task left in PROCESSING by a previous process
// and returns how many were failed. Runs in one transaction so a status
// reader never sees a half-recovered store.
func (r *TaskRepository) FailInterrupted(message string) (int, error) {
	var count int
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		result, err := tx.Exec(
			"UPDATE tasks SET status = ?, error_message = ?, completed_at = ? WHERE status = ?",
			models.TaskStatusFailed, message, time.Now().UTC(), models.TaskStatusProcessing,
		)
		if err != nil {
			return fmt.Errorf("failed to fail interrupted tasks: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count interrupted tasks: %w", err)
		}
		count = int(n)
		return nil
	})
	return count, err
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(s scanner) (*models.Task, error) {
	task := &models.Task{}
	var resultJSON, errorMessage sql.NullString
	var completedAt sql.NullTime

	err := s.Scan(
		&task.ID,
		&task.TaskID,
		&task.Kind,
		&task.Status,
		&task.RequestJSON,
		&resultJSON,
		&errorMessage,
		&task.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if resultJSON.Valid {
		v := resultJSON.String
		task.ResultJSON = &v
	}
	if errorMessage.Valid {
		v := errorMessage.String
		task.ErrorMessage = &v
	}
	if completedAt.Valid {
		t := completedAt.Time
		task.CompletedAt = &t
	}

	return task, nil
}
