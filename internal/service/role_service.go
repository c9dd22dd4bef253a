package service

import (
	"context"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/repository"
)

// RoleService 角色服务接口
type RoleService interface {
	ListRoles(ctx context.Context, organization string) ([]*domain.Role, error)
}

type roleService struct {
	repo   repository.RolesRepository
	logger *zap.Logger
}

// NewRoleService 创建 RoleService 实例
func NewRoleService(repo repository.RolesRepository, logger *zap.Logger) RoleService {
	return &roleService{repo: repo, logger: logger}
}

func (s *roleService) ListRoles(ctx context.Context, organization string) ([]*domain.Role, error) {
	if organization == "" {
		return nil, domain.Validationf("organization is required")
	}
	return s.repo.ListRoles(ctx, organization)
}
