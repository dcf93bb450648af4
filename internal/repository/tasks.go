package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taskapi/internal/apperr"
	"taskapi/internal/config"
	"taskapi/internal/models"
	"taskapi/pkg/logger"

	"go.uber.org/zap"
)

// TaskFilter selects which of the caller's tasks a list returns.
type TaskFilter int

const (
	FilterAll TaskFilter = iota
	FilterImportant
	FilterComplete
	FilterIncomplete
)

const taskColumns = "id, user_id, title, description, important, complete, created_at, updated_at"

func taskCacheKey(taskID int) string {
	return fmt.Sprintf("task:%d", taskID)
}

func scanTask(row *sql.Row) (*models.Task, error) {
	var task models.Task
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Desc,
		&task.Important, &task.Complete, &task.CreatedAt, &task.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "Task not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, "Error fetching task", err)
	}
	return &task, nil
}

func cacheTask(task *models.Task) {
	taskJSON, err := json.Marshal(task)
	if err != nil {
		return
	}
	config.RedisClient.SetEX(config.Ctx, taskCacheKey(task.ID), taskJSON, time.Hour)
}

func dropCachedTask(taskID int) {
	config.RedisClient.Del(config.Ctx, taskCacheKey(taskID))
}

func CreateTask(userID int, title, desc string) (*models.Task, error) {
	task := models.Task{
		UserID: userID,
		Title:  title,
		Desc:   desc,
	}
	err := config.DB.QueryRow(
		"INSERT INTO tasks (user_id, title, description) VALUES ($1, $2, $3) RETURNING id, important, complete, created_at, updated_at",
		userID, title, desc,
	).Scan(&task.ID, &task.Important, &task.Complete, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, "Error creating task", err)
	}
	return &task, nil
}

// GetTaskByID loads one of the caller's tasks, trying Redis first. A task
// owned by another user is reported as not found.
func GetTaskByID(userID, taskID int) (*models.Task, error) {
	if cached, err := config.RedisClient.Get(config.Ctx, taskCacheKey(taskID)).Result(); err == nil {
		var task models.Task
		if err = json.Unmarshal([]byte(cached), &task); err == nil {
			if task.UserID != userID {
				return nil, apperr.New(apperr.NotFound, "Task not found")
			}
			return &task, nil
		}
	}

	task, err := scanTask(config.DB.QueryRow(
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND user_id = $2",
		taskID, userID,
	))
	if err != nil {
		return nil, err
	}

	cacheTask(task)
	return task, nil
}

// ListTasks returns the caller's tasks, newest first.
func ListTasks(userID int, filter TaskFilter) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = $1"
	switch filter {
	case FilterImportant:
		query += " AND important = TRUE"
	case FilterComplete:
		query += " AND complete = TRUE"
	case FilterIncomplete:
		query += " AND complete = FALSE"
	}
	query += " ORDER BY created_at DESC"

	rows, err := config.DB.Query(query, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Server, "Error fetching tasks", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var task models.Task
		err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Desc,
			&task.Important, &task.Complete, &task.CreatedAt, &task.UpdatedAt)
		if err != nil {
			return nil, apperr.Wrap(apperr.Server, "Error scanning tasks", err)
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Server, "Error iterating over tasks", err)
	}
	return tasks, nil
}

// UpdateTaskFields applies a partial update; nil fields are left untouched.
func UpdateTaskFields(userID, taskID int, title, desc *string) (*models.Task, error) {
	// Existence and ownership ride the cached read path
	if _, err := GetTaskByID(userID, taskID); err != nil {
		return nil, err
	}

	task, err := scanTask(config.DB.QueryRow(`
		UPDATE tasks
		SET title = COALESCE($1, title),
			description = COALESCE($2, description),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND user_id = $4
		RETURNING `+taskColumns,
		title, desc, taskID, userID,
	))
	if err != nil {
		return nil, err
	}

	dropCachedTask(taskID)
	cacheTask(task)
	return task, nil
}

// toggleFlag is a read-then-flip of one boolean column. The read goes
// through GetTaskByID so it hits the cache like any other single-task
// read. There is no compare-and-swap: two concurrent toggles on the same
// task can race.
func toggleFlag(userID, taskID int, column string) (*models.Task, error) {
	task, err := GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}
	current := task.Important
	if column == "complete" {
		current = task.Complete
	}

	task, err = scanTask(config.DB.QueryRow(
		"UPDATE tasks SET "+column+" = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND user_id = $3 RETURNING "+taskColumns,
		!current, taskID, userID,
	))
	if err != nil {
		var ae *apperr.Error
		// The task existed a moment ago; vanishing mid-toggle is a conflict
		if errors.As(err, &ae) && ae.Kind == apperr.NotFound {
			logger.ErrorLogger.Error("Task flag toggle lost a race", zap.Int("task_id", taskID))
			return nil, apperr.New(apperr.Conflict, "Task status could not be updated")
		}
		return nil, err
	}

	dropCachedTask(taskID)
	cacheTask(task)
	return task, nil
}

func ToggleImportant(userID, taskID int) (*models.Task, error) {
	return toggleFlag(userID, taskID, "important")
}

func ToggleComplete(userID, taskID int) (*models.Task, error) {
	return toggleFlag(userID, taskID, "complete")
}

func DeleteTask(userID, taskID int) error {
	res, err := config.DB.Exec(
		"DELETE FROM tasks WHERE id = $1 AND user_id = $2",
		taskID, userID,
	)
	if err != nil {
		return apperr.Wrap(apperr.Server, "Error deleting task", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Wrap(apperr.Server, "Error deleting task", err)
	}
	if affected == 0 {
		return apperr.New(apperr.NotFound, "Task not found")
	}

	dropCachedTask(taskID)
	return nil
}
