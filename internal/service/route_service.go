package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
	"trakr-data/internal/repository"
)

// 未指定时间范围时的统计回看窗口
const defaultStatisticsWindow = 30 * 24 * time.Hour

// RouteService 轨迹服务接口
type RouteService interface {
	ListRoutes(ctx context.Context, filter repository.RoutesFilter, page models.Pagination) ([]*domain.Route, *models.Pagination, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)
	Statistics(ctx context.Context, organization string, start, end *time.Time) (*domain.RouteStatistics, error)
}

type routeService struct {
	repo   repository.RoutesRepository
	logger *zap.Logger
}

// NewRouteService 创建 RouteService 实例
func NewRouteService(repo repository.RoutesRepository, logger *zap.Logger) RouteService {
	return &routeService{repo: repo, logger: logger}
}

func (s *routeService) ListRoutes(ctx context.Context, filter repository.RoutesFilter, page models.Pagination) ([]*domain.Route, *models.Pagination, error) {
	if filter.Organization == "" {
		return nil, nil, domain.Validationf("organization is required")
	}
	if err := domain.ValidateTimeRange(filter.StartTime, filter.EndTime); err != nil {
		return nil, nil, err
	}

	page.Normalize()
	routes, total, err := s.repo.ListRoutes(ctx, filter, page)
	if err != nil {
		return nil, nil, err
	}
	page.TotalRecords = total
	return routes, &page, nil
}

func (s *routeService) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return s.repo.GetRoute(ctx, id)
}

// Statistics 时间范围内的轨迹统计，缺省时回看30天
func (s *routeService) Statistics(ctx context.Context, organization string, start, end *time.Time) (*domain.RouteStatistics, error) {
	if organization == "" {
		return nil, domain.Validationf("organization is required")
	}
	if err := domain.ValidateTimeRange(start, end); err != nil {
		return nil, err
	}

	effectiveEnd := time.Now().UTC()
	if end != nil {
		effectiveEnd = *end
	}
	effectiveStart := effectiveEnd.Add(-defaultStatisticsWindow)
	if start != nil {
		effectiveStart = *start
	}

	return s.repo.Statistics(ctx, organization, effectiveStart, effectiveEnd)
}
