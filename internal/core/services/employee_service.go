package services

import (
	"context"
	"errors"
	"log"
	"time"

	"hrdocs-api/internal/adapters/persistence/models"
	"hrdocs-api/internal/adapters/persistence/repositories"
	"hrdocs-api/internal/core/domain"
	"hrdocs-api/internal/pkg/pagination"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// EmployeeService handles employee records and their user accounts
type EmployeeService struct {
	employeeRepo repositories.EmployeeRepository
	userRepo     repositories.UserRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repositories.EmployeeRepository, userRepo repositories.UserRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
	}
}

// EmployeeUserInput is the user account part of an employee
type EmployeeUserInput struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Username string `json:"username" validate:"required,min=3,max=15,alphanum"`
	Password string `json:"password" validate:"required,password"`
}

// CreateEmployeeInput represents create employee input
type CreateEmployeeInput struct {
	Name    string            `json:"name" validate:"required,min=3,max=100"`
	HiredAt string            `json:"hiredAt" validate:"required,date"`
	User    EmployeeUserInput `json:"user" validate:"required"`
}

// UpdateEmployeeUserInput is the optional user account part of an update
type UpdateEmployeeUserInput struct {
	Email    *string `json:"email" validate:"omitempty,email,max=100"`
	Username *string `json:"username" validate:"omitempty,min=3,max=15,alphanum"`
	Password *string `json:"password" validate:"omitempty,password"`
}

// UpdateEmployeeInput represents update employee input
type UpdateEmployeeInput struct {
	Name    *string                  `json:"name" validate:"omitempty,min=3,max=100"`
	HiredAt *string                  `json:"hiredAt" validate:"omitempty,date"`
	User    *UpdateEmployeeUserInput `json:"user"`
}

// CreateEmployee creates an employee and its user account
func (s *EmployeeService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*models.EmployeeResponse, error) {
	hiredAt, err := time.Parse(dateLayout, input.HiredAt)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	if err := checkUnique(ctx, s.userRepo, input.User.Email, input.User.Username); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:         input.User.Email,
		Username:      input.User.Username,
		PlainPassword: input.User.Password,
		IsActive:      true,
	}
	employee := &models.Employee{
		Name:    input.Name,
		HiredAt: hiredAt,
	}

	if err := s.employeeRepo.Create(ctx, employee, user); err != nil {
		return nil, translateWriteError(err)
	}

	log.Printf("✅ Employee created: %s (user: %s)", employee.Name, user.Username)
	return employee.ToResponse(), nil
}

// ListEmployees lists employees with pagination
func (s *EmployeeService) ListEmployees(ctx context.Context, params pagination.Params) (*pagination.Page[*models.EmployeeResponse], error) {
	employees, total, err := s.employeeRepo.List(ctx, params.Offset(), params.Limit)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(employees, params, total, (*models.Employee).ToResponse), nil
}

// GetEmployee gets an employee by ID
func (s *EmployeeService) GetEmployee(ctx context.Context, id uint) (*models.EmployeeResponse, error) {
	employee, err := s.getEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return employee.ToResponse(), nil
}

// UpdateEmployee updates an employee and, optionally, its user account
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uint, input *UpdateEmployeeInput) (*models.EmployeeResponse, error) {
	employee, err := s.getEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.HiredAt != nil {
		hiredAt, err := time.Parse(dateLayout, *input.HiredAt)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		employee.HiredAt = hiredAt
	}

	if input.User != nil {
		if err := applyUserChanges(ctx, s.userRepo, &employee.User, input.User.Email, input.User.Username); err != nil {
			return nil, err
		}
		if input.User.Password != nil {
			employee.User.PlainPassword = *input.User.Password
		}
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, translateWriteError(err)
	}

	log.Printf("✅ Employee updated: ID %d", employee.ID)
	return employee.ToResponse(), nil
}

// DeleteEmployee deletes an employee together with the user account it owns
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uint) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrEmployeeNotFound
		}
		return err
	}

	log.Printf("✅ Employee deleted: ID %d", id)
	return nil
}

func (s *EmployeeService) getEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}
