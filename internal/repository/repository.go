package repository

import (
	"context"
	"time"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
)

// OrganizationsRepository 组织Repository接口
type OrganizationsRepository interface {
	// 分页查询组织列表
	ListOrganizations(ctx context.Context, page models.Pagination) ([]*domain.Organization, int, error)

	// 下拉列表用的全量组织摘要
	ListOrganizationRefs(ctx context.Context) ([]domain.OrganizationRef, error)

	GetOrganization(ctx context.Context, id int64) (*domain.Organization, error)
	CreateOrganization(ctx context.Context, create *domain.OrganizationCreate) (*domain.Organization, error)
	UpdateOrganization(ctx context.Context, id int64, update *domain.OrganizationUpdate) (*domain.Organization, error)
}

// AccountsFilter 账号过滤条件（字段均可选）
type AccountsFilter struct {
	Organization string // 组织名精确匹配
	AccountName  string // 账号名模糊匹配
}

// AccountsRepository 账号Repository接口
type AccountsRepository interface {
	ListAccounts(ctx context.Context, filter AccountsFilter, page models.Pagination) ([]*domain.Account, int, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	CreateAccount(ctx context.Context, create *domain.AccountCreate) (*domain.Account, error)
	UpdateAccount(ctx context.Context, id int64, update *domain.AccountUpdate) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id int64) (bool, error)
}

// TrackingObjectsRepository 被跟踪对象Repository接口
type TrackingObjectsRepository interface {
	ListTrackingObjects(ctx context.Context, organization string) ([]*domain.TrackingObject, error)
	GetTrackingObject(ctx context.Context, id int64) (*domain.TrackingObject, error)
	CreateTrackingObject(ctx context.Context, create *domain.TrackingObjectCreate) (*domain.TrackingObject, error)
	UpdateTrackingObject(ctx context.Context, id int64, update *domain.TrackingObjectUpdate) (*domain.TrackingObject, error)
	DeleteTrackingObject(ctx context.Context, id int64) (bool, error)
}

// TagsFilter 标签过滤条件（字段均可选）
type TagsFilter struct {
	Organization string // 组织名精确匹配
	Model        string // imei 模糊匹配
}

// TagsRepository 标签Repository接口
type TagsRepository interface {
	ListTags(ctx context.Context, filter TagsFilter, page models.Pagination) ([]*domain.Tag, int, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)

	// TransferTags 批量转移标签到目标组织
	// 目标组织必须存在，所有标签必须存在；两者之一不满足则整体失败、无部分写入。
	TransferTags(ctx context.Context, ids []int64, newOrganizationID int64) (*domain.BulkResult, error)

	// UpdateTelemetry 应用设备遥测（MQTT接入路径）
	UpdateTelemetry(ctx context.Context, telemetry *domain.TagTelemetry, at time.Time) error
}

// AlarmsFilter 报警过滤条件
// Organization 必填；其余字段可选，缺省时不追加谓词。
type AlarmsFilter struct {
	Organization string
	WarnType     string
	StartTime    *time.Time
	EndTime      *time.Time
}

// AlarmsRepository 报警Repository接口
type AlarmsRepository interface {
	ListAlarms(ctx context.Context, filter AlarmsFilter, page models.Pagination) ([]*domain.Alarm, int, error)
	GetAlarm(ctx context.Context, id int64) (*domain.Alarm, error)

	// HandleAlarms 批量处理报警
	// 存在性和不变量校验（同组织、均未处理）全有或全无；逐行应用在单事务内
	// 尽力而为，失败的ID记入结果，事务对成功的行照常提交。
	HandleAlarms(ctx context.Context, ids []int64, handledBy, reason string) (*domain.BulkResult, error)
}

// RoutesFilter 轨迹过滤条件
type RoutesFilter struct {
	Organization string
	StartTime    *time.Time
	EndTime      *time.Time
}

// RoutesRepository 轨迹Repository接口（append-only）
type RoutesRepository interface {
	ListRoutes(ctx context.Context, filter RoutesFilter, page models.Pagination) ([]*domain.Route, int, error)
	GetRoute(ctx context.Context, id int64) (*domain.Route, error)

	// AppendPing 追加GPS轨迹点（遥测接入路径）
	AppendPing(ctx context.Context, terminalID string, at time.Time, gpsX, gpsY *float64) error

	// Statistics 轨迹统计
	Statistics(ctx context.Context, organization string, start, end time.Time) (*domain.RouteStatistics, error)
}

// RolesRepository 角色Repository接口
type RolesRepository interface {
	ListRoles(ctx context.Context, organization string) ([]*domain.Role, error)
}
