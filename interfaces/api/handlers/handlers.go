package handlers

import (
	"taskly/domain/services"
)

// Services bundles everything the handlers need.
type Services struct {
	UserService services.UserService
	TaskService services.TaskService
	JWTSecret   string
}

// Handlers holds all HTTP handlers.
type Handlers struct {
	AuthHandler *AuthHandler
	TaskHandler *TaskHandler
	JWTSecret   string
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler: NewAuthHandler(services.UserService),
		TaskHandler: NewTaskHandler(services.TaskService),
		JWTSecret:   services.JWTSecret,
	}
}
