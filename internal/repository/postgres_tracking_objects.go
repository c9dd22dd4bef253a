package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"trakr-data/internal/domain"
)

// PostgresTrackingObjectsRepository 被跟踪对象Repository实现
type PostgresTrackingObjectsRepository struct {
	db *sql.DB
}

// NewPostgresTrackingObjectsRepository 创建被跟踪对象Repository
func NewPostgresTrackingObjectsRepository(db *sql.DB) *PostgresTrackingObjectsRepository {
	return &PostgresTrackingObjectsRepository{db: db}
}

// 确保实现了接口
var _ TrackingObjectsRepository = (*PostgresTrackingObjectsRepository)(nil)

const trackingObjectSelect = `
	SELECT t.sn, o.organization_name, t.name, t.role, t.mac
	FROM tracking_objects t
	JOIN organizations o ON t.organization_id = o.id
`

func scanTrackingObject(row interface{ Scan(...any) error }) (*domain.TrackingObject, error) {
	var obj domain.TrackingObject
	var role, mac sql.NullString
	if err := row.Scan(&obj.SN, &obj.Organization, &obj.Name, &role, &mac); err != nil {
		return nil, err
	}
	if role.Valid {
		obj.Role = &role.String
	}
	if mac.Valid {
		obj.Mac = &mac.String
	}
	return &obj, nil
}

// ListTrackingObjects 查询指定组织的被跟踪对象列表
func (r *PostgresTrackingObjectsRepository) ListTrackingObjects(ctx context.Context, organization string) ([]*domain.TrackingObject, error) {
	rows, err := r.db.QueryContext(ctx,
		trackingObjectSelect+` WHERE o.organization_name = $1 ORDER BY t.name`, organization)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking objects: %w", err)
	}
	defer rows.Close()

	objects := []*domain.TrackingObject{}
	for rows.Next() {
		obj, err := scanTrackingObject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tracking object: %w", err)
		}
		objects = append(objects, obj)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tracking objects: %w", err)
	}

	return objects, nil
}

// GetTrackingObject 根据ID查询被跟踪对象
func (r *PostgresTrackingObjectsRepository) GetTrackingObject(ctx context.Context, id int64) (*domain.TrackingObject, error) {
	obj, err := scanTrackingObject(r.db.QueryRowContext(ctx, trackingObjectSelect+` WHERE t.sn = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundf("tracking object %d not found", id)
		}
		return nil, fmt.Errorf("failed to get tracking object: %w", err)
	}
	return obj, nil
}

// CreateTrackingObject 创建被跟踪对象
func (r *PostgresTrackingObjectsRepository) CreateTrackingObject(ctx context.Context, create *domain.TrackingObjectCreate) (*domain.TrackingObject, error) {
	var orgID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM organizations WHERE organization_name = $1`,
		create.Organization,
	).Scan(&orgID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundf("organization %q not found", create.Organization)
		}
		return nil, fmt.Errorf("failed to resolve organization: %w", err)
	}

	var role, mac sql.NullString
	if create.Role != nil && *create.Role != "" {
		role = sql.NullString{String: *create.Role, Valid: true}
	}
	if create.Mac != nil && *create.Mac != "" {
		mac = sql.NullString{String: *create.Mac, Valid: true}
	}

	var sn int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO tracking_objects (organization_id, name, role, mac)
		VALUES ($1, $2, $3, $4)
		RETURNING sn
	`, orgID, create.Name, role, mac).Scan(&sn)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracking object: %w", err)
	}

	return r.GetTrackingObject(ctx, sn)
}

// UpdateTrackingObject 更新被跟踪对象（部分字段）
func (r *PostgresTrackingObjectsRepository) UpdateTrackingObject(ctx context.Context, id int64, update *domain.TrackingObjectUpdate) (*domain.TrackingObject, error) {
	sets := []string{}
	args := []any{}
	argN := 1

	if update.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argN))
		args = append(args, *update.Name)
		argN++
	}
	if update.Role != nil {
		sets = append(sets, fmt.Sprintf("role = $%d", argN))
		args = append(args, sql.NullString{String: *update.Role, Valid: *update.Role != ""})
		argN++
	}
	if update.Mac != nil {
		sets = append(sets, fmt.Sprintf("mac = $%d", argN))
		args = append(args, sql.NullString{String: *update.Mac, Valid: *update.Mac != ""})
		argN++
	}

	query := fmt.Sprintf(`UPDATE tracking_objects SET %s WHERE sn = $%d`, strings.Join(sets, ", "), argN)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update tracking object: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, domain.NotFoundf("tracking object %d not found", id)
	}

	return r.GetTrackingObject(ctx, id)
}

// DeleteTrackingObject 删除被跟踪对象
func (r *PostgresTrackingObjectsRepository) DeleteTrackingObject(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tracking_objects WHERE sn = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete tracking object: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
