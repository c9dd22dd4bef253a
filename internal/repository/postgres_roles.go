package repository

import (
	"context"
	"database/sql"
	"fmt"

	"trakr-data/internal/domain"
)

// PostgresRolesRepository 角色Repository实现
type PostgresRolesRepository struct {
	db *sql.DB
}

// NewPostgresRolesRepository 创建角色Repository
func NewPostgresRolesRepository(db *sql.DB) *PostgresRolesRepository {
	return &PostgresRolesRepository{db: db}
}

// 确保实现了接口
var _ RolesRepository = (*PostgresRolesRepository)(nil)

// ListRoles 查询组织下的角色列表
func (r *PostgresRolesRepository) ListRoles(ctx context.Context, organization string) ([]*domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ro.sn, o.organization_name, ro.name, ro.color
		FROM roles ro
		JOIN organizations o ON ro.organization_id = o.id
		WHERE o.organization_name = $1
		ORDER BY ro.name
	`, organization)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roles := []*domain.Role{}
	for rows.Next() {
		var role domain.Role
		var color sql.NullString
		if err := rows.Scan(&role.SN, &role.Organization, &role.Name, &color); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		if color.Valid {
			role.Color = &color.String
		}
		roles = append(roles, &role)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roles: %w", err)
	}

	return roles, nil
}
