package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/models"
	"trakr-data/internal/repository"
)

// fakeAlarmsRepo 记录透传的参数
type fakeAlarmsRepo struct {
	handleIDs    []int64
	handledBy    string
	reason       string
	handleResult *domain.BulkResult
	listFilter   repository.AlarmsFilter
}

func (f *fakeAlarmsRepo) ListAlarms(ctx context.Context, filter repository.AlarmsFilter, page models.Pagination) ([]*domain.Alarm, int, error) {
	f.listFilter = filter
	return []*domain.Alarm{}, 0, nil
}

func (f *fakeAlarmsRepo) GetAlarm(ctx context.Context, id int64) (*domain.Alarm, error) {
	return nil, domain.NotFoundf("alarm %d not found", id)
}

func (f *fakeAlarmsRepo) HandleAlarms(ctx context.Context, ids []int64, handledBy, reason string) (*domain.BulkResult, error) {
	f.handleIDs = ids
	f.handledBy = handledBy
	f.reason = reason
	if f.handleResult != nil {
		return f.handleResult, nil
	}
	return &domain.BulkResult{
		AppliedCount: len(ids),
		FailedIDs:    []int64{},
		Timestamp:    time.Now().UTC(),
	}, nil
}

func TestHandleAlarms_PassesActorToRepository(t *testing.T) {
	repo := &fakeAlarmsRepo{}
	svc := NewAlarmService(repo, zap.NewNop())

	req := &domain.AlarmHandleRequest{AlarmIDs: []int64{1, 2}, Reason: "checked on site"}
	result, err := svc.HandleAlarms(context.Background(), req, "alice")

	require.NoError(t, err)
	assert.Equal(t, 2, result.AppliedCount)
	assert.Equal(t, []int64{1, 2}, repo.handleIDs)
	assert.Equal(t, "alice", repo.handledBy)
	assert.Equal(t, "checked on site", repo.reason)
}

func TestHandleAlarms_RejectsEmptyIDs(t *testing.T) {
	repo := &fakeAlarmsRepo{}
	svc := NewAlarmService(repo, zap.NewNop())

	req := &domain.AlarmHandleRequest{AlarmIDs: []int64{}, Reason: "x"}
	_, err := svc.HandleAlarms(context.Background(), req, "alice")

	assert.True(t, domain.IsValidation(err))
	assert.Nil(t, repo.handleIDs)
}

func TestHandleAlarms_RejectsDuplicateIDs(t *testing.T) {
	repo := &fakeAlarmsRepo{}
	svc := NewAlarmService(repo, zap.NewNop())

	req := &domain.AlarmHandleRequest{AlarmIDs: []int64{1, 1}, Reason: "x"}
	_, err := svc.HandleAlarms(context.Background(), req, "alice")

	assert.True(t, domain.IsValidation(err))
}

func TestHandleAlarms_RejectsOversizedBatch(t *testing.T) {
	repo := &fakeAlarmsRepo{}
	svc := NewAlarmService(repo, zap.NewNop())

	ids := make([]int64, 101)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	req := &domain.AlarmHandleRequest{AlarmIDs: ids, Reason: "x"}
	_, err := svc.HandleAlarms(context.Background(), req, "alice")

	assert.True(t, domain.IsValidation(err))
}

func TestListAlarms_RequiresOrganization(t *testing.T) {
	svc := NewAlarmService(&fakeAlarmsRepo{}, zap.NewNop())

	_, _, err := svc.ListAlarms(context.Background(), repository.AlarmsFilter{}, models.Pagination{})

	assert.True(t, domain.IsValidation(err))
}

func TestListAlarms_RejectsUnknownWarnType(t *testing.T) {
	svc := NewAlarmService(&fakeAlarmsRepo{}, zap.NewNop())

	filter := repository.AlarmsFilter{Organization: "acme", WarnType: "meltdown"}
	_, _, err := svc.ListAlarms(context.Background(), filter, models.Pagination{})

	assert.True(t, domain.IsValidation(err))
}

func TestListAlarms_RejectsInvertedTimeRange(t *testing.T) {
	svc := NewAlarmService(&fakeAlarmsRepo{}, zap.NewNop())

	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	start := end.Add(time.Hour)
	filter := repository.AlarmsFilter{Organization: "acme", StartTime: &start, EndTime: &end}
	_, _, err := svc.ListAlarms(context.Background(), filter, models.Pagination{})

	assert.True(t, domain.IsValidation(err))
}
