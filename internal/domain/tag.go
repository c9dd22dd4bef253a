package domain

import "time"

// Tag GPS标签设备
// imei 是设备唯一标识，telemetry 字段由设备遥测接入更新。
type Tag struct {
	SN                 int64      `json:"sn"`
	Organization       string     `json:"organization"`
	IMEI               string     `json:"imei"`
	Signal             *int       `json:"signal"`
	Power              *int       `json:"power"`
	ChargeStatus       *string    `json:"charge_status"`
	TrackingUpdateTime *time.Time `json:"tracking_update_time"`
	DataUpdateTime     *time.Time `json:"data_update_time"`
	BluetoothMark      *string    `json:"bluetooth_mark"`
}

// TagTelemetry 设备遥测数据（MQTT接入）
type TagTelemetry struct {
	IMEI         string   `json:"imei"`
	Signal       *int     `json:"signal"`
	Power        *int     `json:"power"`
	ChargeStatus *string  `json:"charge_status"`
	GpsX         *float64 `json:"gps_x"`
	GpsY         *float64 `json:"gps_y"`
	Timestamp    int64    `json:"timestamp"`
}

func (t *TagTelemetry) Validate() error {
	if t.IMEI == "" {
		return Validationf("imei is required")
	}
	return nil
}
