package service

import (
	"context"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
	"trakr-data/internal/repository"
)

// TagService 标签服务接口
type TagService interface {
	ListTags(ctx context.Context, filter repository.TagsFilter, page models.Pagination) ([]*domain.Tag, *models.Pagination, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)

	// TransferTags 批量转移标签到目标组织
	TransferTags(ctx context.Context, ids []int64, newOrganizationID int64) (*domain.BulkResult, error)
}

type tagService struct {
	repo   repository.TagsRepository
	logger *zap.Logger
}

// NewTagService 创建 TagService 实例
func NewTagService(repo repository.TagsRepository, logger *zap.Logger) TagService {
	return &tagService{repo: repo, logger: logger}
}

func (s *tagService) ListTags(ctx context.Context, filter repository.TagsFilter, page models.Pagination) ([]*domain.Tag, *models.Pagination, error) {
	page.Normalize()
	tags, total, err := s.repo.ListTags(ctx, filter, page)
	if err != nil {
		return nil, nil, err
	}
	page.TotalRecords = total
	return tags, &page, nil
}

func (s *tagService) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.repo.GetTag(ctx, id)
}

// TransferTags 批量转移标签
// ID 列表的结构校验在进仓储前完成，存在性和目标组织校验在事务内完成。
func (s *tagService) TransferTags(ctx context.Context, ids []int64, newOrganizationID int64) (*domain.BulkResult, error) {
	if err := domain.ValidateBulkIDs(ids); err != nil {
		return nil, err
	}
	if newOrganizationID <= 0 {
		return nil, domain.Validationf("new_organization_id must be positive")
	}

	result, err := s.repo.TransferTags(ctx, ids, newOrganizationID)
	if err != nil {
		return nil, err
	}

	if result.FailedCount > 0 {
		s.logger.Warn("tag transfer partially applied",
			zap.Int("applied", result.AppliedCount),
			zap.Int("failed", result.FailedCount),
			zap.Int64s("failed_ids", result.FailedIDs),
			zap.Int64("new_organization_id", newOrganizationID))
	} else {
		s.logger.Info("tags transferred",
			zap.Int("applied", result.AppliedCount),
			zap.Int64("new_organization_id", newOrganizationID))
	}

	return result, nil
}
