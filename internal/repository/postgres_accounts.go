package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
)

// PostgresAccountsRepository 账号Repository实现
type PostgresAccountsRepository struct {
	db *sql.DB
}

// NewPostgresAccountsRepository 创建账号Repository
func NewPostgresAccountsRepository(db *sql.DB) *PostgresAccountsRepository {
	return &PostgresAccountsRepository{db: db}
}

// 确保实现了接口
var _ AccountsRepository = (*PostgresAccountsRepository)(nil)

const accountSelect = `
	SELECT a.sn, o.organization_name, a.account, a.permission, a.login_free_address
	FROM accounts a
	JOIN organizations o ON a.organization_id = o.id
`

func scanAccount(row interface{ Scan(...any) error }) (*domain.Account, error) {
	var acc domain.Account
	var addr sql.NullString
	if err := row.Scan(&acc.SN, &acc.Organization, &acc.Account, &acc.Permission, &addr); err != nil {
		return nil, err
	}
	if addr.Valid {
		acc.LoginFreeAddress = &addr.String
	}
	return &acc, nil
}

// ListAccounts 查询账号列表（组织精确匹配 + 账号名模糊匹配，分页）
func (r *PostgresAccountsRepository) ListAccounts(ctx context.Context, filter AccountsFilter, page models.Pagination) ([]*domain.Account, int, error) {
	page.Normalize()

	where := newWhere()
	if filter.Organization != "" {
		where.Eq("o.organization_name", filter.Organization)
	}
	if filter.AccountName != "" {
		where.ILike("a.account", filter.AccountName)
	}
	whereClause, args := where.Clause(1)

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM accounts a
		JOIN organizations o ON a.organization_id = o.id
		%s
	`, whereClause)

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	n := where.NextArg(1)
	query := fmt.Sprintf(`%s %s ORDER BY a.account LIMIT $%d OFFSET $%d`,
		accountSelect, whereClause, n, n+1)
	args = append(args, page.PageSize, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, total, nil
}

// GetAccount 根据ID查询账号
func (r *PostgresAccountsRepository) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	acc, err := scanAccount(r.db.QueryRowContext(ctx, accountSelect+` WHERE a.sn = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NotFoundf("account %d not found", id)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acc, nil
}

// CreateAccount 创建账号（(organization, account) 唯一）
func (r *PostgresAccountsRepository) CreateAccount(ctx context.Context, create *domain.AccountCreate) (*domain.Account, error) {
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

	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE organization_id = $1 AND account = $2)`,
		orgID, create.Account,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check account: %w", err)
	}
	if exists {
		return nil, domain.Conflictf("account already exists in this organization")
	}

	var addr sql.NullString
	if create.LoginFreeAddress != nil && *create.LoginFreeAddress != "" {
		addr = sql.NullString{String: *create.LoginFreeAddress, Valid: true}
	}

	var sn int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (organization_id, account, permission, login_free_address)
		VALUES ($1, $2, $3, $4)
		RETURNING sn
	`, orgID, create.Account, create.Permission, addr).Scan(&sn)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return r.GetAccount(ctx, sn)
}

// UpdateAccount 更新账号（部分字段）
func (r *PostgresAccountsRepository) UpdateAccount(ctx context.Context, id int64, update *domain.AccountUpdate) (*domain.Account, error) {
	sets := []string{}
	args := []any{}
	argN := 1

	if update.Account != nil {
		sets = append(sets, fmt.Sprintf("account = $%d", argN))
		args = append(args, *update.Account)
		argN++
	}
	if update.Permission != nil {
		sets = append(sets, fmt.Sprintf("permission = $%d", argN))
		args = append(args, *update.Permission)
		argN++
	}
	if update.LoginFreeAddress != nil {
		sets = append(sets, fmt.Sprintf("login_free_address = $%d", argN))
		args = append(args, sql.NullString{String: *update.LoginFreeAddress, Valid: *update.LoginFreeAddress != ""})
		argN++
	}

	query := fmt.Sprintf(`UPDATE accounts SET %s WHERE sn = $%d`, strings.Join(sets, ", "), argN)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, domain.NotFoundf("account %d not found", id)
	}

	return r.GetAccount(ctx, id)
}

// DeleteAccount 删除账号
func (r *PostgresAccountsRepository) DeleteAccount(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE sn = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected > 0, nil
}
