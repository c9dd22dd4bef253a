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

// PostgresTagsRepository 标签Repository实现
type PostgresTagsRepository struct {
	db *sql.DB
}

// NewPostgresTagsRepository 创建标签Repository
func NewPostgresTagsRepository(db *sql.DB) *PostgresTagsRepository {
	return &PostgresTagsRepository{db: db}
}

// 确保实现了接口
var _ TagsRepository = (*PostgresTagsRepository)(nil)

const tagSelect = `
	SELECT t.sn, o.organization_name, t.imei, t.signal, t.power,
	       t.charge_status, t.tracking_update_time, t.data_update_time, t.bluetooth_mark
	FROM tags t
	JOIN organizations o ON t.organization_id = o.id
`

func scanTag(row interface{ Scan(...any) error }) (*domain.Tag, error) {
	var tag domain.Tag
	var signal, power sql.NullInt64
	var chargeStatus, bluetoothMark sql.NullString
	var trackingUpdate, dataUpdate sql.NullTime
	err := row.Scan(&tag.SN, &tag.Organization, &tag.IMEI, &signal, &power,
		&chargeStatus, &trackingUpdate, &dataUpdate, &bluetoothMark)
	if err != nil {
		return nil, err
	}
	if signal.Valid {
		v := int(signal.Int64)
		tag.Signal = &v
	}
	if power.Valid {
		v := int(power.Int64)
		tag.Power = &v
	}
	if chargeStatus.Valid {
		tag.ChargeStatus = &chargeStatus.String
	}
	if trackingUpdate.Valid {
		tag.TrackingUpdateTime = &trackingUpdate.Time
	}
	if dataUpdate.Valid {
		tag.DataUpdateTime = &dataUpdate.Time
	}
	if bluetoothMark.Valid {
		tag.BluetoothMark = &bluetoothMark.String
	}
	return &tag, nil
}

// ListTags 查询标签列表（组织精确匹配 + imei 模糊匹配，分页）
func (r *PostgresTagsRepository) ListTags(ctx context.Context, filter TagsFilter, page models.Pagination) ([]*domain.Tag, int, error) {
	page.Normalize()

	where := newWhere()
	if filter.Organization != "" {
		where.Eq("o.organization_name", filter.Organization)
	}
	if filter.Model != "" {
		where.ILike("t.imei", filter.Model)
	}
	whereClause, args := where.Clause(1)

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM tags t
		JOIN organizations o ON t.organization_id = o.id
		%s
	`, whereClause)

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}

	n := where.NextArg(1)
	query := fmt.Sprintf(`%s %s ORDER BY t.sn LIMIT $%d OFFSET $%d`,
		tagSelect, whereClause, n, n+1)
	args = append(args, page.PageSize, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return tags, total, nil
}

// GetTag 根据ID查询标签
func (r *PostgresTagsRepository) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := scanTag(r.db.QueryRowContext(ctx, tagSelect+` WHERE t.sn = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundf("tag %d not found", id)
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return tag, nil
}

// TransferTags 批量转移标签到目标组织
// 阶段顺序：目标组织存在性 -> 标签存在性 -> 逐行应用 -> 一次提交。
// 前两个阶段失败整体回滚、无部分写入；逐行阶段的失败只记入 FailedIDs，
// 事务对成功的行照常提交。
func (r *PostgresTagsRepository) TransferTags(ctx context.Context, ids []int64, newOrganizationID int64) (*domain.BulkResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var targetOrg string
	err = tx.QueryRowContext(ctx,
		`SELECT organization_name FROM organizations WHERE id = $1`,
		newOrganizationID,
	).Scan(&targetOrg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundf("target organization not found")
		}
		return nil, fmt.Errorf("failed to resolve target organization: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT sn FROM tags WHERE sn = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}
	existing := make(map[int64]struct{}, len(ids))
	for rows.Next() {
		var sn int64
		if err := rows.Scan(&sn); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan tag sn: %w", err)
		}
		existing[sn] = struct{}{}
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	if len(existing) < len(ids) {
		missing := []int64{}
		for _, id := range ids {
			if _, ok := existing[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, domain.NotFoundf("tags not found").WithIDs(missing)
	}

	result := &domain.BulkResult{FailedIDs: []int64{}}
	for _, id := range ids {
		res, err := tx.ExecContext(ctx,
			`UPDATE tags SET organization_id = $1 WHERE sn = $2`,
			newOrganizationID, id)
		if err != nil {
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		affected, err := res.RowsAffected()
		if err != nil || affected == 0 {
			// 阶段2和阶段4之间被并发删除的行
			result.FailedIDs = append(result.FailedIDs, id)
			continue
		}
		result.AppliedCount++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit tag transfer: %w", err)
	}

	result.FailedCount = len(result.FailedIDs)
	result.Timestamp = time.Now().UTC()
	return result, nil
}

// UpdateTelemetry 应用设备遥测
// 未知 imei 返回 NotFound，由接入层记录并跳过。
func (r *PostgresTagsRepository) UpdateTelemetry(ctx context.Context, telemetry *domain.TagTelemetry, at time.Time) error {
	var signal, power sql.NullInt64
	var chargeStatus sql.NullString
	if telemetry.Signal != nil {
		signal = sql.NullInt64{Int64: int64(*telemetry.Signal), Valid: true}
	}
	if telemetry.Power != nil {
		power = sql.NullInt64{Int64: int64(*telemetry.Power), Valid: true}
	}
	if telemetry.ChargeStatus != nil {
		chargeStatus = sql.NullString{String: *telemetry.ChargeStatus, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE tags
		SET signal = COALESCE($2, signal),
		    power = COALESCE($3, power),
		    charge_status = COALESCE($4, charge_status),
		    tracking_update_time = $5,
		    data_update_time = $5
		WHERE imei = $1
	`, telemetry.IMEI, signal, power, chargeStatus, at)
	if err != nil {
		return fmt.Errorf("failed to update tag telemetry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NotFoundf("tag with imei %q not found", telemetry.IMEI)
	}
	return nil
}
