package ingest

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"trakr-data/internal/domain"
	"trakr-data/internal/repository"
)

// TelemetryConsumer 设备遥测消费者
// 每条消息更新标签遥测字段，带坐标时追加一个轨迹点。
// 畸形报文和未知 imei 记日志后跳过，不向 broker 报错重投。
type TelemetryConsumer struct {
	tags   repository.TagsRepository
	routes repository.RoutesRepository
	logger *zap.Logger
}

// NewTelemetryConsumer 创建遥测消费者
func NewTelemetryConsumer(tags repository.TagsRepository, routes repository.RoutesRepository, logger *zap.Logger) *TelemetryConsumer {
	return &TelemetryConsumer{
		tags:   tags,
		routes: routes,
		logger: logger,
	}
}

// HandleMessage 处理一条遥测消息
func (c *TelemetryConsumer) HandleMessage(topic string, payload []byte) error {
	telemetry, err := parseTelemetry(payload)
	if err != nil {
		c.logger.Warn("skipping malformed telemetry message",
			zap.String("topic", topic),
			zap.Error(err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	at := time.Now().UTC()
	if telemetry.Timestamp > 0 {
		at = time.Unix(telemetry.Timestamp, 0).UTC()
	}

	if err := c.tags.UpdateTelemetry(ctx, telemetry, at); err != nil {
		if domain.IsNotFound(err) {
			c.logger.Warn("skipping telemetry for unknown tag",
				zap.String("imei", telemetry.IMEI))
			return nil
		}
		return err
	}

	if telemetry.GpsX != nil && telemetry.GpsY != nil {
		if err := c.routes.AppendPing(ctx, telemetry.IMEI, at, telemetry.GpsX, telemetry.GpsY); err != nil {
			return err
		}
	}

	c.logger.Debug("telemetry applied", zap.String("imei", telemetry.IMEI))
	return nil
}

func parseTelemetry(payload []byte) (*domain.TagTelemetry, error) {
	var telemetry domain.TagTelemetry
	if err := json.Unmarshal(payload, &telemetry); err != nil {
		return nil, err
	}
	if err := telemetry.Validate(); err != nil {
		return nil, err
	}
	return &telemetry, nil
}
