package service

import (
	"context"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
	"trakr-data/internal/repository"
)

// AlarmService 报警服务接口
type AlarmService interface {
	ListAlarms(ctx context.Context, filter repository.AlarmsFilter, page models.Pagination) ([]*domain.Alarm, *models.Pagination, error)
	GetAlarm(ctx context.Context, id int64) (*domain.Alarm, error)

	// HandleAlarms 批量处理报警，handledBy 是发起操作的账号
	HandleAlarms(ctx context.Context, req *domain.AlarmHandleRequest, handledBy string) (*domain.BulkResult, error)
}

type alarmService struct {
	repo   repository.AlarmsRepository
	logger *zap.Logger
}

// NewAlarmService 创建 AlarmService 实例
func NewAlarmService(repo repository.AlarmsRepository, logger *zap.Logger) AlarmService {
	return &alarmService{repo: repo, logger: logger}
}

func (s *alarmService) ListAlarms(ctx context.Context, filter repository.AlarmsFilter, page models.Pagination) ([]*domain.Alarm, *models.Pagination, error) {
	if filter.Organization == "" {
		return nil, nil, domain.Validationf("organization is required")
	}
	if filter.WarnType != "" {
		if err := domain.ValidateWarnType(filter.WarnType); err != nil {
			return nil, nil, err
		}
	}
	if err := domain.ValidateTimeRange(filter.StartTime, filter.EndTime); err != nil {
		return nil, nil, err
	}

	page.Normalize()
	alarms, total, err := s.repo.ListAlarms(ctx, filter, page)
	if err != nil {
		return nil, nil, err
	}
	page.TotalRecords = total
	return alarms, &page, nil
}

func (s *alarmService) GetAlarm(ctx context.Context, id int64) (*domain.Alarm, error) {
	return s.repo.GetAlarm(ctx, id)
}

// HandleAlarms 批量处理报警
// 结构校验在进仓储前完成；存在性和不变量校验在事务内完成。
func (s *alarmService) HandleAlarms(ctx context.Context, req *domain.AlarmHandleRequest, handledBy string) (*domain.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.repo.HandleAlarms(ctx, req.AlarmIDs, handledBy, req.Reason)
	if err != nil {
		return nil, err
	}

	if result.FailedCount > 0 {
		s.logger.Warn("alarm handling partially applied",
			zap.Int("applied", result.AppliedCount),
			zap.Int("failed", result.FailedCount),
			zap.Int64s("failed_ids", result.FailedIDs),
			zap.String("handled_by", handledBy))
	} else {
		s.logger.Info("alarms handled",
			zap.Int("applied", result.AppliedCount),
			zap.String("handled_by", handledBy),
			zap.String("reason", req.Reason))
	}

	return result, nil
}
