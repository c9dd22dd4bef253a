package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
	"trakr-data/internal/repository"
	"trakr-data/internal/store"
)

const (
	organizationRefsCacheKey = "trakr:organizations:refs"
	organizationRefsCacheTTL = 5 * time.Minute
)

// OrganizationService 组织服务接口
type OrganizationService interface {
	ListOrganizations(ctx context.Context, page models.Pagination) ([]*domain.Organization, *models.Pagination, error)

	// ListOrganizationRefs 下拉列表，走缓存
	ListOrganizationRefs(ctx context.Context) ([]domain.OrganizationRef, error)

	GetOrganization(ctx context.Context, id int64) (*domain.Organization, error)
	CreateOrganization(ctx context.Context, create *domain.OrganizationCreate) (*domain.Organization, error)
	UpdateOrganization(ctx context.Context, id int64, update *domain.OrganizationUpdate) (*domain.Organization, error)
}

type organizationService struct {
	repo   repository.OrganizationsRepository
	kv     store.KV
	logger *zap.Logger
}

// NewOrganizationService 创建 OrganizationService 实例
// kv 可以为 nil，此时下拉列表直接落库。
func NewOrganizationService(repo repository.OrganizationsRepository, kv store.KV, logger *zap.Logger) OrganizationService {
	return &organizationService{
		repo:   repo,
		kv:     kv,
		logger: logger,
	}
}

// ListOrganizations 分页查询组织列表
func (s *organizationService) ListOrganizations(ctx context.Context, page models.Pagination) ([]*domain.Organization, *models.Pagination, error) {
	page.Normalize()
	orgs, total, err := s.repo.ListOrganizations(ctx, page)
	if err != nil {
		return nil, nil, err
	}
	page.TotalRecords = total
	return orgs, &page, nil
}

// ListOrganizationRefs 下拉列表用的全量组织摘要
// 缓存读写失败只记日志，不影响请求。
func (s *organizationService) ListOrganizationRefs(ctx context.Context) ([]domain.OrganizationRef, error) {
	if s.kv != nil {
		cached, err := s.kv.Get(ctx, organizationRefsCacheKey)
		if err == nil {
			var refs []domain.OrganizationRef
			if err := json.Unmarshal([]byte(cached), &refs); err == nil {
				return refs, nil
			}
			s.logger.Warn("failed to decode cached organization refs", zap.Error(err))
		} else if err != store.ErrMiss {
			s.logger.Warn("failed to read organization refs cache", zap.Error(err))
		}
	}

	refs, err := s.repo.ListOrganizationRefs(ctx)
	if err != nil {
		return nil, err
	}

	if s.kv != nil {
		if data, err := json.Marshal(refs); err == nil {
			if err := s.kv.Set(ctx, organizationRefsCacheKey, string(data), organizationRefsCacheTTL); err != nil {
				s.logger.Warn("failed to write organization refs cache", zap.Error(err))
			}
		}
	}

	return refs, nil
}

// GetOrganization 根据ID查询组织
func (s *organizationService) GetOrganization(ctx context.Context, id int64) (*domain.Organization, error) {
	return s.repo.GetOrganization(ctx, id)
}

// CreateOrganization 创建组织
func (s *organizationService) CreateOrganization(ctx context.Context, create *domain.OrganizationCreate) (*domain.Organization, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	org, err := s.repo.CreateOrganization(ctx, create)
	if err != nil {
		return nil, err
	}
	s.invalidateRefsCache(ctx)
	s.logger.Info("organization created",
		zap.Int64("id", org.ID),
		zap.String("organization_name", org.OrganizationName))
	return org, nil
}

// UpdateOrganization 更新组织
func (s *organizationService) UpdateOrganization(ctx context.Context, id int64, update *domain.OrganizationUpdate) (*domain.Organization, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	org, err := s.repo.UpdateOrganization(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.invalidateRefsCache(ctx)
	s.logger.Info("organization updated", zap.Int64("id", id))
	return org, nil
}

func (s *organizationService) invalidateRefsCache(ctx context.Context) {
	if s.kv == nil {
		return
	}
	if err := s.kv.Delete(ctx, organizationRefsCacheKey); err != nil {
		s.logger.Warn("failed to invalidate organization refs cache", zap.Error(err))
	}
}
