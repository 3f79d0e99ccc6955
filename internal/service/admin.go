package service

import (
	"context"

	"linguista/internal/domain"
	"linguista/internal/permission"
	"linguista/internal/repository"

	"github.com/google/uuid"
)

// AdminService gives staff raw access to user content
type AdminService struct {
	repo repository.AdminRepository
}

// NewAdminService creates a new admin service
func NewAdminService(repo repository.AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

// Resources lists the managed resource names
func (s *AdminService) Resources() []string {
	return s.repo.Resources()
}

// List returns one page of a resource
func (s *AdminService) List(ctx context.Context, user *domain.User, resource string, page domain.PageRequest) ([]map[string]any, int, error) {
	if err := (permission.IsStaff{}).Allow(ctx, permission.Request{User: user}); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, resource, page.Normalize())
}

// Delete removes one row of a resource
func (s *AdminService) Delete(ctx context.Context, user *domain.User, resource string, id uuid.UUID) error {
	if err := (permission.IsStaff{}).Allow(ctx, permission.Request{User: user}); err != nil {
		return err
	}
	return s.repo.Delete(ctx, resource, id)
}
