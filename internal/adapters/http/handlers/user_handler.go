package handlers

import (
	"errors"
	"log"
	"strconv"

	"hrdocs-api/internal/adapters/http/middleware"
	"hrdocs-api/internal/core/domain"
	"hrdocs-api/internal/core/services"
	"hrdocs-api/internal/pkg/pagination"
	"hrdocs-api/internal/pkg/response"
	"hrdocs-api/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers handles listing all users (Admin only)
// @Summary List all users
// @Description Get a paginated list of all users (Admin only)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	result, err := h.userService.ListUsers(c.UserContext(), pagination.FromQuery(c))
	if err != nil {
		log.Printf("❌ List users failed: %v", err)
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", result)
}

// GetUser handles getting a user by ID (Admin only)
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response{data=models.UserResponse}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.userService.GetUserByID(c.UserContext(), id)
	if err != nil {
		return userError(c, err, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user)
}

// CreateUser handles creating a user (Admin only)
// @Summary Create user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUserInput true "User data"
// @Success 201 {object} response.Response{data=models.UserResponse}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input services.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.userService.CreateUser(c.UserContext(), &input)
	if err != nil {
		return userError(c, err, "Failed to create user")
	}

	return response.Created(c, "User created successfully", user)
}

// UpdateUser handles updating a user (Admin only)
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body services.UpdateUserInput true "Update data"
// @Success 200 {object} response.Response{data=models.UserResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.userService.UpdateUser(c.UserContext(), id, &input)
	if err != nil {
		return userError(c, err, "Failed to update user")
	}

	return response.Success(c, "User updated successfully", user)
}

// DeleteUser handles deleting a user (Admin only)
// @Summary Delete user
// @Description Delete a user together with its employee record and sessions
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.userService.DeleteUser(c.UserContext(), id, principal.ID); err != nil {
		return userError(c, err, "Failed to delete user")
	}

	return response.Success(c, "User deleted successfully", nil)
}

// userError maps user and employee service errors to responses
func userError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return response.NotFound(c, "Employee not found")
	case errors.Is(err, domain.ErrEmailTaken):
		return response.Conflict(c, "Email already exists")
	case errors.Is(err, domain.ErrUsernameTaken):
		return response.Conflict(c, "Username already exists")
	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "Email or username already exists")
	case errors.Is(err, domain.ErrCannotDeleteSelf):
		return response.BadRequest(c, "Cannot delete your own account")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Invalid input")
	default:
		log.Printf("❌ %s: %v", fallback, err)
		return response.InternalServerError(c, fallback)
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
