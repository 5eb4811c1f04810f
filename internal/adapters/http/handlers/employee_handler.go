package handlers

import (
	"log"

	"hrdocs-api/internal/core/services"
	"hrdocs-api/internal/pkg/pagination"
	"hrdocs-api/internal/pkg/response"
	"hrdocs-api/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee management endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// CreateEmployee creates an employee with its user account (Admin only)
// @Summary Create employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateEmployeeInput true "Employee data"
// @Success 201 {object} response.Response{data=models.EmployeeResponse}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var input services.CreateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	employee, err := h.employeeService.CreateEmployee(c.UserContext(), &input)
	if err != nil {
		return userError(c, err, "Failed to create employee")
	}

	return response.Created(c, "Employee created successfully", employee)
}

// ListEmployees lists employees (Admin only)
// @Summary List employees
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	result, err := h.employeeService.ListEmployees(c.UserContext(), pagination.FromQuery(c))
	if err != nil {
		log.Printf("❌ List employees failed: %v", err)
		return response.InternalServerError(c, "Failed to list employees")
	}

	return response.Success(c, "Employees retrieved successfully", result)
}

// GetEmployee gets an employee by ID (Admin only)
// @Summary Get employee by ID
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response{data=models.EmployeeResponse}
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	employee, err := h.employeeService.GetEmployee(c.UserContext(), id)
	if err != nil {
		return userError(c, err, "Failed to get employee")
	}

	return response.Success(c, "Employee retrieved successfully", employee)
}

// UpdateEmployee updates an employee and optionally its user account (Admin only)
// @Summary Update employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param body body services.UpdateEmployeeInput true "Update data"
// @Success 200 {object} response.Response{data=models.EmployeeResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees/{id} [patch]
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var input services.UpdateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	employee, err := h.employeeService.UpdateEmployee(c.UserContext(), id, &input)
	if err != nil {
		return userError(c, err, "Failed to update employee")
	}

	return response.Success(c, "Employee updated successfully", employee)
}

// DeleteEmployee deletes an employee and the user account it owns (Admin only)
// @Summary Delete employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	if err := h.employeeService.DeleteEmployee(c.UserContext(), id); err != nil {
		return userError(c, err, "Failed to delete employee")
	}

	return response.Success(c, "Employee deleted successfully", nil)
}
