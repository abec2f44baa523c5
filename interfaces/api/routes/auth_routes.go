package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskly/interfaces/api/handlers"
	"taskly/interfaces/api/middleware"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers) {
	api.Post("/register", h.AuthHandler.Register)
	api.Post("/login", h.AuthHandler.Login)
	api.Post("/forgot-password", h.AuthHandler.ForgotPassword)
	api.Post("/reset-password", h.AuthHandler.ResetPassword)
	api.Get("/me", middleware.Protected(h.JWTSecret), h.AuthHandler.Me)
}
