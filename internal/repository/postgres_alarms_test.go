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

func setupMockAlarmsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresAlarmsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewPostgresAlarmsRepository(db)

	return db, mock, repo
}

var alarmColumns = []string{
	"sn", "organization_name", "imei", "name", "warn_type", "time",
	"check_the_time", "check_time", "is_handled",
	"handled_by", "handled_at", "handle_reason",
}

// ============================================
// 查询测试
// ============================================

func TestListAlarms_Success(t *testing.T) {
	db, mock, repo := setupMockAlarmsDB(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows(alarmColumns).
		AddRow(int64(2), "acme", "860000000000002", "truck-7", "geofence", now,
			nil, nil, false, nil, nil, nil).
		AddRow(int64(1), "acme", "860000000000001", "truck-3", "low_battery", now.Add(-time.Hour),
			nil, nil, true, "alice", now, "battery swapped")

	mock.ExpectQuery(`SELECT a\.sn`).
		WithArgs("acme", 10, 0).
		WillReturnRows(rows)

	alarms, total, err := repo.ListAlarms(ctx, AlarmsFilter{Organization: "acme"}, models.Pagination{})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, alarms, 2)
	assert.Equal(t, "truck-7", alarms[0].TrackingObject)
	assert.False(t, alarms[0].IsHandled)
	assert.True(t, alarms[1].IsHandled)
	require.NotNil(t, alarms[1].HandledBy)
	assert.Equal(t, "alice", *alarms[1].HandledBy)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAlarms_OrphanShownAsUnknown(t *testing.T) {
	db, mock, repo := setupMockAlarmsDB(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	// imei 没有匹配的 tag，tracking_object 没有匹配的对象
	rows := sqlmock.NewRows(alarmColumns).
		AddRow(int64(5), "acme", nil, nil, "geofence", time.Now(),
			nil, nil, false, nil, nil, nil)

	mock.ExpectQuery(`SELECT a\.sn`).
		WithArgs("acme", 10, 0).
		WillReturnRows(rows)

	alarms, _, err := repo.ListAlarms(ctx, AlarmsFilter{Organization: "acme"}, models.Pagination{})

	require.NoError(t, err)
	require.Len(t, alarms, 1)
	assert.Equal(t, domain.UnknownName, alarms[0].IMEI)
	assert.Equal(t, domain.UnknownName, alarms[0].TrackingObject)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAlarms_TimeRangeFilter(t *testing.T) {
	db, mock, repo := setupMockAlarmsDB(t)
	defer db.Close()

	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("acme", "geofence", start, end).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery(`SELECT a\.sn`).
		WithArgs("acme", "geofence", start, end, 10, 0).
		WillReturnRows(sqlmock.NewRows(alarmColumns))

	filter := AlarmsFilter{
		Organization: "acme",
		WarnType:     "geofence",
		StartTime:    &start,
		EndTime:      &end,
	}
	alarms, total, err := repo.ListAlarms(ctx, filter, models.Pagination{})

	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, alarms)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAlarm_NotFound(t *testing.T) {
	db, mock, repo := setupMockAlarmsDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT a\.sn`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	alarm, err := repo.GetAlarm(context.Background(), 99)

	assert.Nil(t, alarm)
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAlarm_OrphanShownAsUnknown(t *testing.T) {
	db, mock, repo := setupMockAlarmsDB(t)
	defer db.Close()

	rows := sqlmock.NewRows(alarmColumns).
		AddRow(int64(5), "acme", nil, nil, "geofence", time.Now(),
			nil, nil, false, nil, nil, nil)

	mock.ExpectQuery(`SELECT a\.sn`).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	alarm, err := repo.GetAlarm(context.Background(), 5)

	require.NoError(t, err)
	// 与列表路径使用同一套解析逻辑
	assert.Equal(t, domain.UnknownName, alarm.IMEI)
	assert.Equal(t, domain.UnknownName, alarm.TrackingObject)

	require.NoError(t, mock.ExpectationsWereMet())
}

// ============================================
// 批量处理测试
// ============================================

var alarmStateColumns = []string{"sn", "organization_id", "is_handled"}

func TestHandleAlarms_Success(t *testing.T) {
	db, mock, repo := setupMockAlarmsDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT sn, organization_id, is_handled FROM alarms`).
		WillReturnRows(sqlmock.NewRows(alarmStateColumns).
			AddRow(int64(1), int64(10), false).
			AddRow(int64(2), int64(10), false))
	mock.ExpectExec(`UPDATE alarms`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE alarms`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := repo.HandleAlarms(context.Background(), []int64{1, 2}, "alice", "checked on site")

	require.NoError(t, err)
	assert.Equal(t, 2, result.AppliedCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.Empty(t, result.FailedIDs)
	assert.False(t, result.Timestamp.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleAlarms_MissingIDs(t *testing.T) {
	db, mock, repo := setupMockAlarmsDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT sn, organization_id, is_handled FROM alarms`).
		WillReturnRows(sqlmock.NewRows(alarmStateColumns).
			AddRow(int64(1), int64(10), false))
	mock.ExpectRollback()

	result, err := repo.HandleAlarms(context.Background(), []int64{1, 2, 3}, "alice", "checked")

	assert.Nil(t, result)
	assert.True(t, domain.IsNotFound(err))
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []int64{2, 3}, de.IDs)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleAlarms_CrossOrganizationConflict(t *testing.T) {
	db, mock, repo := setupMockAlarmsDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT sn, organization_id, is_handled FROM alarms`).
		WillReturnRows(sqlmock.NewRows(alarmStateColumns).
			AddRow(int64(1), int64(10), false).
			AddRow(int64(2), int64(20), false))
	mock.ExpectRollback()

	result, err := repo.HandleAlarms(context.Background(), []int64{1, 2}, "alice", "checked")

	assert.Nil(t, result)
	assert.True(t, domain.IsConflict(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleAlarms_AlreadyHandledConflict(t *testing.T) {
	db, mock, repo := setupMockAlarmsDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT sn, organization_id, is_handled FROM alarms`).
		WillReturnRows(sqlmock.NewRows(alarmStateColumns).
			AddRow(int64(1), int64(10), false).
			AddRow(int64(2), int64(10), true))
	mock.ExpectRollback()

	result, err := repo.HandleAlarms(context.Background(), []int64{1, 2}, "alice", "checked")

	assert.Nil(t, result)
	assert.True(t, domain.IsConflict(err))
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []int64{2}, de.IDs)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleAlarms_ConcurrentlyHandledRowFails(t *testing.T) {
	db, mock, repo := setupMockAlarmsDB(t)
	defer db.Close()

	// 校验通过后另一个事务抢先处理了 sn=2：条件 UPDATE 影响 0 行，
	// 该行计入失败，其余照常提交。
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT sn, organization_id, is_handled FROM alarms`).
		WillReturnRows(sqlmock.NewRows(alarmStateColumns).
			AddRow(int64(1), int64(10), false).
			AddRow(int64(2), int64(10), false))
	mock.ExpectExec(`UPDATE alarms`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE alarms`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	result, err := repo.HandleAlarms(context.Background(), []int64{1, 2}, "alice", "checked")

	require.NoError(t, err)
	assert.Equal(t, 1, result.AppliedCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Equal(t, []int64{2}, result.FailedIDs)

	require.NoError(t, mock.ExpectationsWereMet())
}
