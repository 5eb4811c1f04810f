package repositories

import (
	"context"

	"hrdocs-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// employeeRepository implements EmployeeRepository interface
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create creates the user account first, then the employee linked to it
func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		employee.UserID = user.ID
		if err := tx.Omit("User").Create(employee).Error; err != nil {
			return err
		}

		employee.User = *user
		return nil
	})
}

// GetByID gets an employee by ID with its user
func (r *employeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// ExistsByUserID checks if a user has an employment record
func (r *employeeRepository) ExistsByUserID(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

// Update saves the user account and the employee
func (r *employeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&employee.User).Error; err != nil {
			return err
		}
		return tx.Omit("User").Save(employee).Error
	})
}

// Delete removes the employee, the user it owns and the user's refresh tokens
func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.Where("id = ?", id).First(&employee).Error; err != nil {
			return err
		}
		return deleteUserTx(tx, employee.UserID)
	})
}

// List lists employees with pagination
func (r *employeeRepository) List(ctx context.Context, offset, limit int) ([]*models.Employee, int64, error) {
	var employees []*models.Employee
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Preload("User").Order("id").Offset(offset).Limit(limit).Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}
