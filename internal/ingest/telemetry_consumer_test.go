package ingest

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

type fakeTelemetryTagsRepo struct {
	telemetry  *domain.TagTelemetry
	at         time.Time
	updateErr  error
	updateCall int
}

func (f *fakeTelemetryTagsRepo) ListTags(ctx context.Context, filter repository.TagsFilter, page models.Pagination) ([]*domain.Tag, int, error) {
	return nil, 0, nil
}

func (f *fakeTelemetryTagsRepo) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	return nil, domain.NotFoundf("tag %d not found", id)
}

func (f *fakeTelemetryTagsRepo) TransferTags(ctx context.Context, ids []int64, newOrganizationID int64) (*domain.BulkResult, error) {
	return nil, nil
}

func (f *fakeTelemetryTagsRepo) UpdateTelemetry(ctx context.Context, telemetry *domain.TagTelemetry, at time.Time) error {
	f.updateCall++
	f.telemetry = telemetry
	f.at = at
	return f.updateErr
}

type fakeTelemetryRoutesRepo struct {
	terminalID string
	gpsX, gpsY *float64
	pings      int
}

func (f *fakeTelemetryRoutesRepo) ListRoutes(ctx context.Context, filter repository.RoutesFilter, page models.Pagination) ([]*domain.Route, int, error) {
	return nil, 0, nil
}

func (f *fakeTelemetryRoutesRepo) GetRoute(ctx context.Context, id int64) (*domain.Route, error) {
	return nil, domain.NotFoundf("route %d not found", id)
}

func (f *fakeTelemetryRoutesRepo) AppendPing(ctx context.Context, terminalID string, at time.Time, gpsX, gpsY *float64) error {
	f.pings++
	f.terminalID = terminalID
	f.gpsX = gpsX
	f.gpsY = gpsY
	return nil
}

func (f *fakeTelemetryRoutesRepo) Statistics(ctx context.Context, organization string, start, end time.Time) (*domain.RouteStatistics, error) {
	return &domain.RouteStatistics{}, nil
}

func setupConsumer() (*fakeTelemetryTagsRepo, *fakeTelemetryRoutesRepo, *TelemetryConsumer) {
	tags := &fakeTelemetryTagsRepo{}
	routes := &fakeTelemetryRoutesRepo{}
	return tags, routes, NewTelemetryConsumer(tags, routes, zap.NewNop())
}

func TestHandleMessage_UpdatesTagAndAppendsPing(t *testing.T) {
	tags, routes, consumer := setupConsumer()

	payload := `{"imei": "860000000000001", "signal": 4, "power": 87, "gps_x": 121.47, "gps_y": 31.23, "timestamp": 1767225600}`
	err := consumer.HandleMessage("trakr/telemetry/860000000000001", []byte(payload))

	require.NoError(t, err)
	require.Equal(t, 1, tags.updateCall)
	assert.Equal(t, "860000000000001", tags.telemetry.IMEI)
	assert.Equal(t, time.Unix(1767225600, 0).UTC(), tags.at)
	require.Equal(t, 1, routes.pings)
	assert.Equal(t, "860000000000001", routes.terminalID)
	require.NotNil(t, routes.gpsX)
	assert.InDelta(t, 121.47, *routes.gpsX, 1e-9)
}

func TestHandleMessage_NoCoordinatesSkipsPing(t *testing.T) {
	tags, routes, consumer := setupConsumer()

	payload := `{"imei": "860000000000001", "power": 50}`
	err := consumer.HandleMessage("trakr/telemetry/860000000000001", []byte(payload))

	require.NoError(t, err)
	assert.Equal(t, 1, tags.updateCall)
	assert.Equal(t, 0, routes.pings)
}

func TestHandleMessage_MalformedPayloadSkipped(t *testing.T) {
	tags, routes, consumer := setupConsumer()

	err := consumer.HandleMessage("trakr/telemetry/x", []byte(`not json`))

	require.NoError(t, err)
	assert.Equal(t, 0, tags.updateCall)
	assert.Equal(t, 0, routes.pings)
}

func TestHandleMessage_MissingIMEISkipped(t *testing.T) {
	tags, _, consumer := setupConsumer()

	err := consumer.HandleMessage("trakr/telemetry/x", []byte(`{"power": 10}`))

	require.NoError(t, err)
	assert.Equal(t, 0, tags.updateCall)
}

func TestHandleMessage_UnknownIMEISkipped(t *testing.T) {
	tags, routes, consumer := setupConsumer()
	tags.updateErr = domain.NotFoundf("tag not found")

	payload := `{"imei": "000000000000000", "gps_x": 1.0, "gps_y": 2.0}`
	err := consumer.HandleMessage("trakr/telemetry/x", []byte(payload))

	require.NoError(t, err)
	assert.Equal(t, 0, routes.pings)
}
