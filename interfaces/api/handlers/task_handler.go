package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskly/domain/dto"
	"taskly/domain/repositories"
	"taskly/domain/services"
	"taskly/pkg/apperrors"
	"taskly/pkg/logger"
	"taskly/pkg/utils"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// caller resolves the authenticated identity; the auth middleware guarantees
// it is present on protected routes.
func caller(c *fiber.Ctx) (*utils.UserContext, error) {
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func taskID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// mapTaskError converts service errors into responses. Ownership mismatches
// surface as 404, same as missing tasks.
func mapTaskError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return utils.NotFoundResponse(c, "Task not found")
	case errors.Is(err, apperrors.ErrCompletedRequired):
		return utils.ValidationErrorResponse(c, fiber.Map{"completed": "This field is required"})
	default:
		logger.ErrorContext(c.UserContext(), "Task operation failed", "error", err)
		return utils.InternalServerErrorResponse(c)
	}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := caller(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	task, err := h.taskService.CreateTask(ctx, user.ID, &req)
	if err != nil {
		return mapTaskError(c, err)
	}

	return utils.CreatedResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := caller(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	filter := repositories.TaskFilter{
		Search: c.Query("search"),
	}
	if completedParam := c.Query("completed"); completedParam != "" {
		completed := services.ParseCompletedFilter(completedParam)
		filter.Completed = &completed
	}

	tasks, err := h.taskService.ListTasks(ctx, user.ID, filter)
	if err != nil {
		return mapTaskError(c, err)
	}

	return utils.SuccessResponse(c, dto.TasksToTaskListResponse(tasks))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := caller(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	id, err := taskID(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.GetTask(ctx, user.ID, id)
	if err != nil {
		return mapTaskError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := caller(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	id, err := taskID(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	task, err := h.taskService.UpdateTask(ctx, user.ID, id, &req)
	if err != nil {
		return mapTaskError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) SetTaskStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := caller(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	id, err := taskID(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	task, err := h.taskService.SetStatus(ctx, user.ID, id, req.Completed)
	if err != nil {
		return mapTaskError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) ToggleTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := caller(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	id, err := taskID(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	task, err := h.taskService.ToggleTask(ctx, user.ID, id)
	if err != nil {
		return mapTaskError(c, err)
	}

	return utils.SuccessResponse(c, dto.TaskToTaskResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := caller(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	id, err := taskID(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid task ID")
	}

	if err := h.taskService.DeleteTask(ctx, user.ID, id); err != nil {
		return mapTaskError(c, err)
	}

	return utils.NoContentResponse(c)
}

func (h *TaskHandler) ListCompleted(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := caller(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	tasks, err := h.taskService.ListCompleted(ctx, user.ID)
	if err != nil {
		return mapTaskError(c, err)
	}

	return utils.SuccessResponse(c, dto.TasksToTaskListResponse(tasks))
}

func (h *TaskHandler) ListPending(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := caller(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	tasks, err := h.taskService.ListPending(ctx, user.ID)
	if err != nil {
		return mapTaskError(c, err)
	}

	return utils.SuccessResponse(c, dto.TasksToTaskListResponse(tasks))
}

func (h *TaskHandler) GetStats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := caller(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	stats, err := h.taskService.Stats(ctx, user.ID)
	if err != nil {
		return mapTaskError(c, err)
	}

	return utils.SuccessResponse(c, stats)
}
