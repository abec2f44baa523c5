package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskly/interfaces/api/handlers"
	"taskly/interfaces/api/middleware"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers) {
	tasks := api.Group("/tasks")
	tasks.Use(middleware.Protected(h.JWTSecret))

	tasks.Get("/", h.TaskHandler.ListTasks)
	tasks.Post("/", h.TaskHandler.CreateTask)

	// Literal routes go before /:id so "completed" is never parsed as an ID.
	tasks.Get("/completed", h.TaskHandler.ListCompleted)
	tasks.Get("/pending", h.TaskHandler.ListPending)
	tasks.Get("/stats", h.TaskHandler.GetStats)

	tasks.Get("/:id", h.TaskHandler.GetTask)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Patch("/:id", h.TaskHandler.UpdateTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
	tasks.Patch("/:id/status", h.TaskHandler.SetTaskStatus)
	tasks.Post("/:id/toggle", h.TaskHandler.ToggleTask)
}
