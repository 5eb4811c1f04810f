package services

import (
	"testing"

	"hrdocs-api/internal/core/domain"
)

func TestAuthorize(t *testing.T) {
	admin := &domain.Principal{ID: 1, Role: domain.RoleAdmin}
	recruiter := &domain.Principal{ID: 2, Role: domain.RoleRecruiter}
	roleless := &domain.Principal{ID: 3}

	tests := []struct {
		name      string
		required  []domain.Role
		principal *domain.Principal
		want      bool
	}{
		{"no requirement, no principal", nil, nil, true},
		{"no requirement, roleless", []domain.Role{}, roleless, true},
		{"missing principal", []domain.Role{domain.RoleAdmin}, nil, false},
		{"principal without role", []domain.Role{domain.RoleAdmin}, roleless, false},
		{"role in set", []domain.Role{domain.RoleRecruiter, domain.RoleAdmin}, recruiter, true},
		{"role not in set", []domain.Role{domain.RoleAdmin}, recruiter, false},
		{"admin has no implicit access", []domain.Role{domain.RoleEmployee}, admin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.required, tt.principal); got != tt.want {
				t.Fatalf("Authorize = %v, want %v", got, tt.want)
			}
		})
	}
}
