package handlers

import (
	"strings"

	"taskapi/internal/apperr"
	"taskapi/internal/events"
	"taskapi/internal/models"
	"taskapi/internal/repository"
	"taskapi/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func CreateTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	type TaskRequest struct {
		Title string `json:"title"`
		Desc  string `json:"desc"`
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Bad request", err)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Desc) == "" {
		return apperr.New(apperr.Validation, "All fields are required")
	}

	task, err := repository.CreateTask(userID, req.Title, req.Desc)
	if err != nil {
		return err
	}

	events.Publish(events.Event{Type: events.TaskCreated, Task: task})
	logger.AuditLogger.Info("Task created successfully", zap.Int("task_id", task.ID))
	return respond(c, fiber.StatusCreated, task, "Task is created")
}

// listTasks backs the four list endpoints, which differ only in filter.
// The :c path parameter is accepted for wire compatibility and ignored.
func listTasks(c *fiber.Ctx, filter repository.TaskFilter, message string) error {
	userID := c.Locals("userID").(int)

	tasks, err := repository.ListTasks(userID, filter)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, tasks, message)
}

func GetAllTasks(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	tasks, err := repository.ListTasks(user.ID, repository.FilterAll)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{
		"user":  user,
		"tasks": tasks,
	}, "Tasks found")
}

func GetImportantTasks(c *fiber.Ctx) error {
	return listTasks(c, repository.FilterImportant, "Important tasks found")
}

func GetCompleteTasks(c *fiber.Ctx) error {
	return listTasks(c, repository.FilterComplete, "Complete tasks found")
}

func GetIncompleteTasks(c *fiber.Ctx) error {
	return listTasks(c, repository.FilterIncomplete, "Incomplete tasks found")
}

func UpdateTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return apperr.New(apperr.Validation, "Invalid task ID")
	}

	// Pointer fields so absent keys are left untouched
	type UpdateTaskRequest struct {
		Title *string `json:"title"`
		Desc  *string `json:"desc"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Wrap(apperr.Validation, "Bad request", err)
	}

	task, err := repository.UpdateTaskFields(userID, taskID, req.Title, req.Desc)
	if err != nil {
		return err
	}

	events.Publish(events.Event{Type: events.TaskUpdated, Task: task})
	logger.AuditLogger.Info("Task updated", zap.Int("task_id", taskID))
	return respond(c, fiber.StatusOK, task, "Task details are updated")
}

func ToggleImportantTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return apperr.New(apperr.Validation, "Invalid task ID")
	}

	task, err := repository.ToggleImportant(userID, taskID)
	if err != nil {
		return err
	}

	events.Publish(events.Event{Type: events.TaskUpdated, Task: task})
	logger.AuditLogger.Info("Task importance toggled", zap.Int("task_id", taskID), zap.Bool("important", task.Important))
	return respond(c, fiber.StatusOK, task, "Important task status is changed")
}

func ToggleCompleteTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return apperr.New(apperr.Validation, "Invalid task ID")
	}

	task, err := repository.ToggleComplete(userID, taskID)
	if err != nil {
		return err
	}

	events.Publish(events.Event{Type: events.TaskUpdated, Task: task})
	logger.AuditLogger.Info("Task completion toggled", zap.Int("task_id", taskID), zap.Bool("complete", task.Complete))
	return respond(c, fiber.StatusOK, task, "Task completion status updated")
}

func DeleteTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		return apperr.New(apperr.Validation, "Invalid task ID")
	}

	if err := repository.DeleteTask(userID, taskID); err != nil {
		return err
	}

	events.Publish(events.Event{Type: events.TaskDeleted, TaskID: taskID})
	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", taskID))
	return respond(c, fiber.StatusOK, nil, "Task is deleted")
}
