package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
)

func setupMockOrganizationsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresOrganizationsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostgresOrganizationsRepository(db)

	return db, mock, repo
}

var organizationRows = []string{"id", "organization_name", "title", "product_type", "create_time"}

func TestListOrganizations_Pagination(t *testing.T) {
	db, mock, repo := setupMockOrganizationsDB(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	rows := sqlmock.NewRows(organizationRows).
		AddRow(int64(3), "acme", "Acme Logistics", "fleet", now)

	// page=2, page_size=1 -> OFFSET 1
	mock.ExpectQuery(`SELECT id, organization_name`).
		WithArgs(1, 1).
		WillReturnRows(rows)

	orgs, total, err := repo.ListOrganizations(context.Background(), models.Pagination{Page: 2, PageSize: 1})

	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, orgs, 1)
	assert.Equal(t, "acme", orgs[0].OrganizationName)
	require.NotNil(t, orgs[0].ProductType)
	assert.Equal(t, "fleet", *orgs[0].ProductType)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrganization_NotFound(t *testing.T) {
	db, mock, repo := setupMockOrganizationsDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, organization_name`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	org, err := repo.GetOrganization(context.Background(), 404)

	assert.Nil(t, org)
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrganization_DuplicateName(t *testing.T) {
	db, mock, repo := setupMockOrganizationsDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	title := "Acme Logistics"
	create := &domain.OrganizationCreate{OrganizationName: "acme", Title: title}
	require.NoError(t, create.Validate())

	org, err := repo.CreateOrganization(context.Background(), create)

	assert.Nil(t, org)
	assert.True(t, domain.IsConflict(err))

	require.NoError(t, mock.ExpectationsWereMet())
}
