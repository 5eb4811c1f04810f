package services

import (
	"context"
	"errors"
	"testing"

	"hrdocs-api/internal/adapters/persistence/models"
	"hrdocs-api/internal/adapters/persistence/repositories"
	"hrdocs-api/internal/core/domain"
	"hrdocs-api/internal/pkg/pagination"
	"hrdocs-api/internal/pkg/password"
	"hrdocs-api/internal/pkg/testdb"
)

func newEmployeeService(t *testing.T) (*EmployeeService, *employeeFixture) {
	t.Helper()
	db := testdb.New(t)
	employees := repositories.NewEmployeeRepository(db)
	users := repositories.NewUserRepository(db)
	return NewEmployeeService(employees, users), &employeeFixture{employees: employees, users: users}
}

type employeeFixture struct {
	employees repositories.EmployeeRepository
	users     repositories.UserRepository
}

func validEmployeeInput() *CreateEmployeeInput {
	return &CreateEmployeeInput{
		Name:    "Alice Martin",
		HiredAt: "2023-04-01",
		User: EmployeeUserInput{
			Email:    "alice@x.com",
			Username: "alice",
			Password: "password1",
		},
	}
}

func TestEmployeeService_CreateEmployee(t *testing.T) {
	svc, h := newEmployeeService(t)
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, validEmployeeInput())
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if created.HiredAt != "2023-04-01" || created.User == nil || created.User.Username != "alice" {
		t.Fatalf("unexpected employee: %+v", created)
	}

	exists, err := h.employees.ExistsByUserID(ctx, created.User.ID)
	if err != nil || !exists {
		t.Fatalf("employment record missing: exists=%v err=%v", exists, err)
	}

	if _, err := svc.CreateEmployee(ctx, validEmployeeInput()); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}

	bad := validEmployeeInput()
	bad.HiredAt = "01/04/2023"
	bad.User.Email = "other@x.com"
	bad.User.Username = "other"
	if _, err := svc.CreateEmployee(ctx, bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestEmployeeService_UpdateEmployee(t *testing.T) {
	svc, h := newEmployeeService(t)
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, validEmployeeInput())
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if _, err := h.users.GetByEmail(ctx, "alice@x.com"); err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}

	name := "Alice Dupont"
	email := "alice.dupont@x.com"
	pw := "password2"
	updated, err := svc.UpdateEmployee(ctx, created.ID, &UpdateEmployeeInput{
		Name: &name,
		User: &UpdateEmployeeUserInput{Email: &email, Password: &pw},
	})
	if err != nil {
		t.Fatalf("UpdateEmployee: %v", err)
	}
	if updated.Name != name || updated.User.Email != email {
		t.Fatalf("unexpected employee: %+v", updated)
	}

	user, err := h.users.GetByEmail(ctx, email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if !password.Verify("password2", user.Password) {
		t.Fatalf("password not re-hashed on update")
	}

	if _, err := svc.UpdateEmployee(ctx, 9999, &UpdateEmployeeInput{Name: &name}); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("err = %v, want ErrEmployeeNotFound", err)
	}
}

func TestEmployeeService_DeleteEmployee(t *testing.T) {
	svc, h := newEmployeeService(t)
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, validEmployeeInput())
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	if err := svc.DeleteEmployee(ctx, created.ID); err != nil {
		t.Fatalf("DeleteEmployee: %v", err)
	}
	if _, err := h.users.GetByID(ctx, created.User.ID); err == nil {
		t.Fatalf("owned user was not deleted")
	}
	if err := svc.DeleteEmployee(ctx, created.ID); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("err = %v, want ErrEmployeeNotFound", err)
	}
}

func TestEmployeeService_ListEmployees(t *testing.T) {
	svc, _ := newEmployeeService(t)
	ctx := context.Background()

	if _, err := svc.CreateEmployee(ctx, validEmployeeInput()); err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	res, err := svc.ListEmployees(ctx, pagination.NewParams(1, 10))
	if err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	employees := res.Items
	if len(employees) != 1 {
		t.Fatalf("unexpected items: %#v", employees)
	}
	if employees[0].User == nil || employees[0].User.Email != "alice@x.com" {
		t.Fatalf("list does not include the user account: %+v", employees[0])
	}
}

func TestEmployeeService_DuplicateInsertIsConflict(t *testing.T) {
	db := testdb.New(t)
	testdb.CreateUser(t, db, "alice@x.com", "taken", "password1")
	svc := NewEmployeeService(repositories.NewEmployeeRepository(db), staleUniquenessRepo{repositories.NewUserRepository(db)})

	if _, err := svc.CreateEmployee(context.Background(), validEmployeeInput()); !errors.Is(err, domain.ErrDuplicateEntry) {
		t.Fatalf("err = %v, want ErrDuplicateEntry", err)
	}

	var employees int64
	db.Model(&models.Employee{}).Count(&employees)
	if employees != 0 {
		t.Fatalf("employee row left behind after failed create")
	}
}
