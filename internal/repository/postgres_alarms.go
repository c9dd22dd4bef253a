package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
)

// PostgresAlarmsRepository 报警Repository实现
type PostgresAlarmsRepository struct {
	db *sql.DB
}

// NewPostgresAlarmsRepository 创建报警Repository
func NewPostgresAlarmsRepository(db *sql.DB) *PostgresAlarmsRepository {
	return &PostgresAlarmsRepository{db: db}
}

// 确保实现了接口
var _ AlarmsRepository = (*PostgresAlarmsRepository)(nil)

// alarmSelect 报警查询
// tags / tracking_objects 是自然键 LEFT JOIN，允许落空，落空时展示 Unknown。
// 列表和单条查询共用此语句，保证两条路径的关联解析一致。
const alarmSelect = `
	SELECT a.sn, o.organization_name, tg.imei, tro.name, a.warn_type, a.time,
	       a.check_the_time, a.check_time, a.is_handled,
	       a.handled_by, a.handled_at, a.handle_reason
	FROM alarms a
	JOIN organizations o ON a.organization_id = o.id
	LEFT JOIN tags tg ON a.imei = tg.imei
	LEFT JOIN tracking_objects tro ON tg.imei = tro.mac
`

func scanAlarm(row interface{ Scan(...any) error }) (*domain.Alarm, error) {
	var alarm domain.Alarm
	var imei, trackingObject sql.NullString
	var checkTheTime, handledAt sql.NullTime
	var checkTime, handledBy, handleReason sql.NullString
	err := row.Scan(&alarm.SN, &alarm.Organization, &imei, &trackingObject,
		&alarm.WarnType, &alarm.Time, &checkTheTime, &checkTime,
		&alarm.IsHandled, &handledBy, &handledAt, &handleReason)
	if err != nil {
		return nil, err
	}
	alarm.IMEI = domain.JoinRefFrom(imei).DisplayName()
	alarm.TrackingObject = domain.JoinRefFrom(trackingObject).DisplayName()
	if checkTheTime.Valid {
		alarm.CheckTheTime = &checkTheTime.Time
	}
	if checkTime.Valid {
		alarm.CheckTime = &checkTime.String
	}
	if handledBy.Valid {
		alarm.HandledBy = &handledBy.String
	}
	if handledAt.Valid {
		alarm.HandledAt = &handledAt.Time
	}
	if handleReason.Valid {
		alarm.HandleReason = &handleReason.String
	}
	return &alarm, nil
}

// ListAlarms 查询报警列表（组织必填，类型和时间范围可选，时间倒序分页）
func (r *PostgresAlarmsRepository) ListAlarms(ctx context.Context, filter AlarmsFilter, page models.Pagination) ([]*domain.Alarm, int, error) {
	page.Normalize()

	where := newWhere().Eq("o.organization_name", filter.Organization)
	if filter.WarnType != "" {
		where.Eq("a.warn_type", filter.WarnType)
	}
	if filter.StartTime != nil {
		where.Gte("a.time", *filter.StartTime)
	}
	if filter.EndTime != nil {
		where.Lte("a.time", *filter.EndTime)
	}
	whereClause, args := where.Clause(1)

	// 计数不需要展示关联，只留组织JOIN
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM alarms a
		JOIN organizations o ON a.organization_id = o.id
		%s
	`, whereClause)

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count alarms: %w", err)
	}

	n := where.NextArg(1)
	query := fmt.Sprintf(`%s %s ORDER BY a.time DESC LIMIT $%d OFFSET $%d`,
		alarmSelect, whereClause, n, n+1)
	args = append(args, page.PageSize, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list alarms: %w", err)
	}
	defer rows.Close()

	alarms := []*domain.Alarm{}
	for rows.Next() {
		alarm, err := scanAlarm(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan alarm: %w", err)
		}
		alarms = append(alarms, alarm)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate alarms: %w", err)
	}

	return alarms, total, nil
}

// GetAlarm 根据ID查询报警
func (r *PostgresAlarmsRepository) GetAlarm(ctx context.Context, id int64) (*domain.Alarm, error) {
	alarm, err := scanAlarm(r.db.QueryRowContext(ctx, alarmSelect+` WHERE a.sn = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundf("alarm %d not found", id)
		}
		return nil, fmt.Errorf("failed to get alarm: %w", err)
	}
	return alarm, nil
}

// HandleAlarms 批量处理报警
// 阶段顺序：存在性 -> 不变量（同组织、均未处理）-> 逐行应用 -> 一次提交。
// 前两个阶段失败整体回滚、无部分写入。逐行 UPDATE 带 is_handled = FALSE
// 条件，校验后被并发处理的行不会二次写入，只记入 FailedIDs。
func (r *PostgresAlarmsRepository) HandleAlarms(ctx context.Context, ids []int64, handledBy, reason string) (*domain.BulkResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT sn, organization_id, is_handled FROM alarms WHERE sn = ANY($1)`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch alarms: %w", err)
	}
	type alarmState struct {
		organizationID int64
		isHandled      bool
	}
	states := make(map[int64]alarmState, len(ids))
	for rows.Next() {
		var sn, orgID int64
		var handled bool
		if err := rows.Scan(&sn, &orgID, &handled); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan alarm state: %w", err)
		}
		states[sn] = alarmState{organizationID: orgID, isHandled: handled}
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alarms: %w", err)
	}

	if len(states) < len(ids) {
		missing := []int64{}
		for _, id := range ids {
			if _, ok := states[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, domain.NotFoundf("alarms not found").WithIDs(missing)
	}

	var orgID int64
	handled := []int64{}
	for _, id := range ids {
		state := states[id]
		if orgID == 0 {
			orgID = state.organizationID
		} else if state.organizationID != orgID {
			return nil, domain.Conflictf("alarms belong to multiple organizations")
		}
		if state.isHandled {
			handled = append(handled, id)
		}
	}
	if len(handled) > 0 {
		return nil, domain.Conflictf("alarms already handled").WithIDs(handled)
	}

	now := time.Now().UTC()
	result := &domain.BulkResult{FailedIDs: []int64{}}
	for _, id := range ids {
		res, err := tx.ExecContext(ctx, `
			UPDATE alarms
			SET is_handled = TRUE, handled_by = $1, handled_at = $2, handle_reason = $3
			WHERE sn = $4 AND is_handled = FALSE
		`, handledBy, now, reason, id)
		if err != nil {
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		affected, err := res.RowsAffected()
		if err != nil || affected == 0 {
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		result.AppliedCount++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit alarm handling: %w", err)
	}

	result.FailedCount = len(result.FailedIDs)
	result.Timestamp = now
	return result, nil
}
