package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
)

// PostgresRoutesRepository 轨迹Repository实现
type PostgresRoutesRepository struct {
	db *sql.DB
}

// NewPostgresRoutesRepository 创建轨迹Repository
func NewPostgresRoutesRepository(db *sql.DB) *PostgresRoutesRepository {
	return &PostgresRoutesRepository{db: db}
}

// 确保实现了接口
var _ RoutesRepository = (*PostgresRoutesRepository)(nil)

// routeSelect 轨迹查询
// terminal_id 经 tags 自然键关联到组织和被跟踪对象，关联落空时对象展示 Unknown。
const routeSelect = `
	SELECT r.sn, r.terminal_id, tro.name, r.tracking_time, r.gps_x, r.gps_y
	FROM route_list r
	LEFT JOIN tags tg ON r.terminal_id = tg.imei
	LEFT JOIN organizations o ON tg.organization_id = o.id
	LEFT JOIN tracking_objects tro ON tg.imei = tro.mac
`

func scanRoute(row interface{ Scan(...any) error }) (*domain.Route, error) {
	var route domain.Route
	var trackingObject sql.NullString
	var gpsX, gpsY sql.NullFloat64
	err := row.Scan(&route.SN, &route.TerminalID, &trackingObject,
		&route.TrackingTime, &gpsX, &gpsY)
	if err != nil {
		return nil, err
	}
	route.TrackingObject = domain.JoinRefFrom(trackingObject).DisplayName()
	if gpsX.Valid {
		route.GpsX = &gpsX.Float64
	}
	if gpsY.Valid {
		route.GpsY = &gpsY.Float64
	}
	return &route, nil
}

// ListRoutes 查询轨迹列表（组织必填，时间范围可选，采集时间倒序分页）
func (r *PostgresRoutesRepository) ListRoutes(ctx context.Context, filter RoutesFilter, page models.Pagination) ([]*domain.Route, int, error) {
	page.Normalize()

	where := newWhere().Eq("o.organization_name", filter.Organization)
	if filter.StartTime != nil {
		where.Gte("r.tracking_time", *filter.StartTime)
	}
	if filter.EndTime != nil {
		where.Lte("r.tracking_time", *filter.EndTime)
	}
	whereClause, args := where.Clause(1)

	// 组织过滤依赖 tags 关联，计数必须保留全部JOIN
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM route_list r
		LEFT JOIN tags tg ON r.terminal_id = tg.imei
		LEFT JOIN organizations o ON tg.organization_id = o.id
		%s
	`, whereClause)

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count routes: %w", err)
	}

	n := where.NextArg(1)
	query := fmt.Sprintf(`%s %s ORDER BY r.tracking_time DESC LIMIT $%d OFFSET $%d`,
		routeSelect, whereClause, n, n+1)
	args = append(args, page.PageSize, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list routes: %w", err)
	}
	defer rows.Close()

	routes := []*domain.Route{}
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, route)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate routes: %w", err)
	}

	return routes, total, nil
}

// GetRoute 根据ID查询轨迹点
func (r *PostgresRoutesRepository) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	route, err := scanRoute(r.db.QueryRowContext(ctx, routeSelect+` WHERE r.sn = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundf("route %d not found", id)
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	return route, nil
}

// AppendPing 追加GPS轨迹点
func (r *PostgresRoutesRepository) AppendPing(ctx context.Context, terminalID string, at time.Time, gpsX, gpsY *float64) error {
	var x, y sql.NullFloat64
	if gpsX != nil {
		x = sql.NullFloat64{Float64: *gpsX, Valid: true}
	}
	if gpsY != nil {
		y = sql.NullFloat64{Float64: *gpsY, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO route_list (terminal_id, tracking_time, gps_x, gps_y)
		VALUES ($1, $2, $3, $4)
	`, terminalID, at, x, y)
	if err != nil {
		return fmt.Errorf("failed to append route ping: %w", err)
	}
	return nil
}

// Statistics 时间范围内的轨迹统计
func (r *PostgresRoutesRepository) Statistics(ctx context.Context, organization string, start, end time.Time) (*domain.RouteStatistics, error) {
	var stats domain.RouteStatistics
	var earliest, latest sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT r.terminal_id),
		       MIN(r.tracking_time), MAX(r.tracking_time)
		FROM route_list r
		LEFT JOIN tags tg ON r.terminal_id = tg.imei
		LEFT JOIN organizations o ON tg.organization_id = o.id
		WHERE o.organization_name = $1 AND r.tracking_time >= $2 AND r.tracking_time <= $3
	`, organization, start, end).Scan(&stats.TotalRoutes, &stats.UniqueTerminals, &earliest, &latest)
	if err != nil {
		return nil, fmt.Errorf("failed to compute route statistics: %w", err)
	}
	if earliest.Valid {
		stats.EarliestTime = &earliest.Time
	}
	if latest.Valid {
		stats.LatestTime = &latest.Time
	}
	if stats.EarliestTime != nil && stats.LatestTime != nil {
		span := stats.LatestTime.Sub(*stats.EarliestTime)
		stats.TimeRangeDays = int(math.Ceil(span.Hours() / 24))
	}
	return &stats, nil
}
