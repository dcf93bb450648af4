package v1

import (
	"taskapi/internal/api/v1/handlers"
	"taskapi/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// User
	userRoutes := api.Group("/users")
	userRoutes.Post("/register", handlers.Register)
	userRoutes.Post("/login", handlers.Login)
	userRoutes.Post("/logout", middleware.RequireAuth, handlers.Logout)

	// Task
	taskRoutes := api.Group("/tasks", middleware.RequireAuth)
	taskRoutes.Post("/createtask", handlers.CreateTask)
	taskRoutes.Get("/getAllTask/:c", handlers.GetAllTasks)
	taskRoutes.Get("/get-imp-task/:c", handlers.GetImportantTasks)
	taskRoutes.Get("/get-comp-task/:c", handlers.GetCompleteTasks)
	taskRoutes.Get("/get-incomp-task/:c", handlers.GetIncompleteTasks)
	taskRoutes.Put("/updateTask/:id", handlers.UpdateTask)
	taskRoutes.Put("/update-imp-task/:id", handlers.ToggleImportantTask)
	taskRoutes.Put("/update-complete-task/:id", handlers.ToggleCompleteTask)
	taskRoutes.Delete("/deleteTask/:id", handlers.DeleteTask)
}
