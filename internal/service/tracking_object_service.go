package service

import (
	"context"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/repository"
)

// TrackingObjectService 被跟踪对象服务接口
type TrackingObjectService interface {
	ListTrackingObjects(ctx context.Context, organization string) ([]*domain.TrackingObject, error)
	GetTrackingObject(ctx context.Context, id int64) (*domain.TrackingObject, error)
	CreateTrackingObject(ctx context.Context, create *domain.TrackingObjectCreate) (*domain.TrackingObject, error)
	UpdateTrackingObject(ctx context.Context, id int64, update *domain.TrackingObjectUpdate) (*domain.TrackingObject, error)
	DeleteTrackingObject(ctx context.Context, id int64) error
}

type trackingObjectService struct {
	repo   repository.TrackingObjectsRepository
	logger *zap.Logger
}

// NewTrackingObjectService 创建 TrackingObjectService 实例
func NewTrackingObjectService(repo repository.TrackingObjectsRepository, logger *zap.Logger) TrackingObjectService {
	return &trackingObjectService{repo: repo, logger: logger}
}

func (s *trackingObjectService) ListTrackingObjects(ctx context.Context, organization string) ([]*domain.TrackingObject, error) {
	if organization == "" {
		return nil, domain.Validationf("organization is required")
	}
	return s.repo.ListTrackingObjects(ctx, organization)
}

func (s *trackingObjectService) GetTrackingObject(ctx context.Context, id int64) (*domain.TrackingObject, error) {
	return s.repo.GetTrackingObject(ctx, id)
}

func (s *trackingObjectService) CreateTrackingObject(ctx context.Context, create *domain.TrackingObjectCreate) (*domain.TrackingObject, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	obj, err := s.repo.CreateTrackingObject(ctx, create)
	if err != nil {
		return nil, err
	}
	s.logger.Info("tracking object created",
		zap.Int64("sn", obj.SN),
		zap.String("name", obj.Name),
		zap.String("organization", obj.Organization))
	return obj, nil
}

func (s *trackingObjectService) UpdateTrackingObject(ctx context.Context, id int64, update *domain.TrackingObjectUpdate) (*domain.TrackingObject, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	obj, err := s.repo.UpdateTrackingObject(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info("tracking object updated", zap.Int64("sn", id))
	return obj, nil
}

func (s *trackingObjectService) DeleteTrackingObject(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteTrackingObject(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFoundf("tracking object %d not found", id)
	}
	s.logger.Info("tracking object deleted", zap.Int64("sn", id))
	return nil
}
