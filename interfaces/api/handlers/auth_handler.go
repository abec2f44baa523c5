package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskly/domain/dto"
	"taskly/domain/services"
	"taskly/pkg/apperrors"
	"taskly/pkg/logger"
	"taskly/pkg/utils"
)

type AuthHandler struct {
	userService services.UserService
}

func NewAuthHandler(userService services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	_, err := h.userService.Register(ctx, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			return utils.ValidationErrorResponse(c, fiber.Map{"email": "already registered"})
		}
		logger.ErrorContext(ctx, "Registration failed", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	// No sensitive fields are echoed back.
	return utils.CreatedResponse(c, dto.RegisterResponse{
		Message: "User registered successfully.",
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	token, user, err := h.userService.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) || errors.Is(err, apperrors.ErrAccountDisabled) {
			return utils.UnauthorizedResponse(c, err.Error())
		}
		logger.ErrorContext(ctx, "Login failed", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, dto.LoginResponse{
		Token: token,
		User:  *dto.UserToUserResponse(user),
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := caller(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	profile, err := h.userService.GetProfile(ctx, user.ID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load profile", "user_id", user.ID, "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, dto.UserToUserResponse(profile))
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	if err := h.userService.ForgotPassword(ctx, req.Email); err != nil {
		logger.ErrorContext(ctx, "Forgot password failed", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	// Same response whether or not the email exists.
	return utils.SuccessResponse(c, fiber.Map{
		"message": "If the email is registered, a reset link has been sent.",
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	if err := h.userService.ResetPassword(ctx, &req); err != nil {
		if errors.Is(err, apperrors.ErrInvalidResetToken) {
			return utils.BadRequestResponse(c, err.Error())
		}
		logger.ErrorContext(ctx, "Password reset failed", "error", err)
		return utils.InternalServerErrorResponse(c)
	}

	return utils.SuccessResponse(c, fiber.Map{
		"message": "Password has been reset.",
	})
}
