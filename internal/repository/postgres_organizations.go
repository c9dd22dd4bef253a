package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
)

// PostgresOrganizationsRepository 组织Repository实现
type PostgresOrganizationsRepository struct {
	db *sql.DB
}

// NewPostgresOrganizationsRepository 创建组织Repository
func NewPostgresOrganizationsRepository(db *sql.DB) *PostgresOrganizationsRepository {
	return &PostgresOrganizationsRepository{db: db}
}

// 确保实现了接口
var _ OrganizationsRepository = (*PostgresOrganizationsRepository)(nil)

const organizationColumns = `id, organization_name, title, product_type, create_time`

func scanOrganization(row interface{ Scan(...any) error }) (*domain.Organization, error) {
	var org domain.Organization
	var productType sql.NullString
	var createTime sql.NullTime
	if err := row.Scan(&org.ID, &org.OrganizationName, &org.Title, &productType, &createTime); err != nil {
		return nil, err
	}
	if productType.Valid {
		org.ProductType = &productType.String
	}
	if createTime.Valid {
		org.CreateTime = &createTime.Time
	}
	return &org, nil
}

// ListOrganizations 分页查询组织列表
func (r *PostgresOrganizationsRepository) ListOrganizations(ctx context.Context, page models.Pagination) ([]*domain.Organization, int, error) {
	page.Normalize()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM organizations`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count organizations: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM organizations
		ORDER BY organization_name
		LIMIT $1 OFFSET $2
	`, organizationColumns)

	rows, err := r.db.QueryContext(ctx, query, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list organizations: %w", err)
	}
	defer rows.Close()

	orgs := []*domain.Organization{}
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate organizations: %w", err)
	}

	return orgs, total, nil
}

// ListOrganizationRefs 下拉列表用的全量组织摘要
func (r *PostgresOrganizationsRepository) ListOrganizationRefs(ctx context.Context) ([]domain.OrganizationRef, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, organization_name, title FROM organizations ORDER BY organization_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization refs: %w", err)
	}
	defer rows.Close()

	refs := []domain.OrganizationRef{}
	for rows.Next() {
		var ref domain.OrganizationRef
		if err := rows.Scan(&ref.ID, &ref.OrganizationName, &ref.Title); err != nil {
			return nil, fmt.Errorf("failed to scan organization ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate organization refs: %w", err)
	}

	return refs, nil
}

// GetOrganization 根据ID查询组织
func (r *PostgresOrganizationsRepository) GetOrganization(ctx context.Context, id int64) (*domain.Organization, error) {
	query := fmt.Sprintf(`SELECT %s FROM organizations WHERE id = $1`, organizationColumns)
	org, err := scanOrganization(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundf("organization %d not found", id)
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}
	return org, nil
}

// CreateOrganization 创建组织（organization_name 唯一）
func (r *PostgresOrganizationsRepository) CreateOrganization(ctx context.Context, create *domain.OrganizationCreate) (*domain.Organization, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM organizations WHERE organization_name = $1)`,
		create.OrganizationName,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check organization name: %w", err)
	}
	if exists {
		return nil, domain.Conflictf("organization name already exists")
	}

	query := fmt.Sprintf(`
		INSERT INTO organizations (organization_name, title, product_type, create_time)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, organizationColumns)

	var productType sql.NullString
	if create.ProductType != nil {
		productType = sql.NullString{String: *create.ProductType, Valid: true}
	}

	org, err := scanOrganization(r.db.QueryRowContext(ctx, query,
		create.OrganizationName, create.Title, productType, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return org, nil
}

// UpdateOrganization 更新组织（部分字段），改名时新名称必须未被占用
func (r *PostgresOrganizationsRepository) UpdateOrganization(ctx context.Context, id int64, update *domain.OrganizationUpdate) (*domain.Organization, error) {
	sets := []string{}
	args := []any{}
	argN := 1

	if update.OrganizationName != nil {
		var exists bool
		err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM organizations WHERE organization_name = $1 AND id != $2)`,
			*update.OrganizationName, id,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check organization name: %w", err)
		}
		if exists {
			return nil, domain.Conflictf("organization name already exists")
		}
		sets = append(sets, fmt.Sprintf("organization_name = $%d", argN))
		args = append(args, *update.OrganizationName)
		argN++
	}
	if update.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argN))
		args = append(args, *update.Title)
		argN++
	}
	if update.ProductType != nil {
		sets = append(sets, fmt.Sprintf("product_type = $%d", argN))
		args = append(args, *update.ProductType)
		argN++
	}

	query := fmt.Sprintf(`
		UPDATE organizations
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argN, organizationColumns)
	args = append(args, id)

	org, err := scanOrganization(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundf("organization %d not found", id)
		}
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}
