package domain

import "time"

// Route GPS轨迹点（append-only，写入后不可变）
// terminal_id 即 imei，通过自然键关联 Tag / TrackingObject。
type Route struct {
	SN             int64     `json:"sn"`
	TerminalID     string    `json:"terminal_id"`
	TrackingObject string    `json:"tracking_object"`
	TrackingTime   time.Time `json:"tracking_time"`
	GpsX           *float64  `json:"gps_x"`
	GpsY           *float64  `json:"gps_y"`
}

// RouteStatistics 轨迹统计
type RouteStatistics struct {
	TotalRoutes     int        `json:"total_routes"`
	UniqueTerminals int        `json:"unique_terminals"`
	EarliestTime    *time.Time `json:"earliest_time"`
	LatestTime      *time.Time `json:"latest_time"`
	TimeRangeDays   int        `json:"time_range_days"`
}
