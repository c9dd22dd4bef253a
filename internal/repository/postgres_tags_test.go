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

func setupMockTagsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresTagsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostgresTagsRepository(db)

	return db, mock, repo
}

var tagColumns = []string{
	"sn", "organization_name", "imei", "signal", "power",
	"charge_status", "tracking_update_time", "data_update_time", "bluetooth_mark",
}

// ============================================
// 查询测试
// ============================================

func TestListTags_Success(t *testing.T) {
	db, mock, repo := setupMockTagsDB(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("acme", "%8600%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows(tagColumns).
		AddRow(int64(1), "acme", "860000000000001", 4, 87, "charging", now, now, nil)

	mock.ExpectQuery(`SELECT t\.sn`).
		WithArgs("acme", "%8600%", 10, 0).
		WillReturnRows(rows)

	filter := TagsFilter{Organization: "acme", Model: "8600"}
	tags, total, err := repo.ListTags(context.Background(), filter, models.Pagination{})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, tags, 1)
	assert.Equal(t, "860000000000001", tags[0].IMEI)
	require.NotNil(t, tags[0].Power)
	assert.Equal(t, 87, *tags[0].Power)
	assert.Nil(t, tags[0].BluetoothMark)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTag_NotFound(t *testing.T) {
	db, mock, repo := setupMockTagsDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT t\.sn`).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	tag, err := repo.GetTag(context.Background(), 42)

	assert.Nil(t, tag)
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

// ============================================
// 批量转移测试
// ============================================

func TestTransferTags_Success(t *testing.T) {
	db, mock, repo := setupMockTagsDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT organization_name FROM organizations`).
		WithArgs(int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"organization_name"}).AddRow("beta"))
	mock.ExpectQuery(`SELECT sn FROM tags`).
		WillReturnRows(sqlmock.NewRows([]string{"sn"}).
			AddRow(int64(1)).
			AddRow(int64(2)))
	mock.ExpectExec(`UPDATE tags SET organization_id`).
		WithArgs(int64(20), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE tags SET organization_id`).
		WithArgs(int64(20), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.TransferTags(context.Background(), []int64{1, 2}, 20)

	require.NoError(t, err)
	assert.Equal(t, 2, result.AppliedCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.Empty(t, result.FailedIDs)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferTags_TargetOrganizationNotFound(t *testing.T) {
	db, mock, repo := setupMockTagsDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT organization_name FROM organizations`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	result, err := repo.TransferTags(context.Background(), []int64{1}, 99)

	assert.Nil(t, result)
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferTags_MissingIDs(t *testing.T) {
	db, mock, repo := setupMockTagsDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT organization_name FROM organizations`).
		WithArgs(int64(20)).
		WillReturnRows(sqlmock.NewRows([]string{"organization_name"}).AddRow("beta"))
	mock.ExpectQuery(`SELECT sn FROM tags`).
		WillReturnRows(sqlmock.NewRows([]string{"sn"}).AddRow(int64(1)))
	mock.ExpectRollback()

	result, err := repo.TransferTags(context.Background(), []int64{1, 7}, 20)

	assert.Nil(t, result)
	assert.True(t, domain.IsNotFound(err))
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []int64{7}, de.IDs)

	require.NoError(t, mock.ExpectationsWereMet())
}

// ============================================
// 遥测测试
// ============================================

func TestUpdateTelemetry_Success(t *testing.T) {
	db, mock, repo := setupMockTagsDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE tags`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	signal := 3
	power := 64
	telemetry := &domain.TagTelemetry{IMEI: "860000000000001", Signal: &signal, Power: &power}
	err := repo.UpdateTelemetry(context.Background(), telemetry, time.Now())

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTelemetry_UnknownIMEI(t *testing.T) {
	db, mock, repo := setupMockTagsDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE tags`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	telemetry := &domain.TagTelemetry{IMEI: "000000000000000"}
	err := repo.UpdateTelemetry(context.Background(), telemetry, time.Now())

	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
