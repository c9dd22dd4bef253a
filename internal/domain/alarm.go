package domain

import "time"

// 报警类型
const (
	WarnTypeGeofence           = "geofence"
	WarnTypeLowBattery         = "low_battery"
	WarnTypeUnexpectedMovement = "unexpected_movement"
)

var validWarnTypes = map[string]bool{
	WarnTypeGeofence:           true,
	WarnTypeLowBattery:         true,
	WarnTypeUnexpectedMovement: true,
}

// ValidateWarnType 报警类型必须是枚举值之一
func ValidateWarnType(w string) error {
	if !validWarnTypes[w] {
		return Validationf("warn_type must be one of: geofence, low_battery, unexpected_movement")
	}
	return nil
}

// Alarm 围栏/电量/移动报警
// 状态机：Unhandled -> Handled，单向且 Handled 为终态。
// IMEI 和 TrackingObject 是自然键关联的展示字段，关联落空时为 "Unknown"。
type Alarm struct {
	SN             int64      `json:"sn"`
	Organization   string     `json:"organization"`
	IMEI           string     `json:"imei"`
	TrackingObject string     `json:"tracking_object"`
	WarnType       string     `json:"warn_type"`
	Time           time.Time  `json:"time"`
	CheckTheTime   *time.Time `json:"check_the_time"`
	CheckTime      *string    `json:"check_time"`
	IsHandled      bool       `json:"is_handled"`
	HandledBy      *string    `json:"handled_by"`
	HandledAt      *time.Time `json:"handled_at"`
	HandleReason   *string    `json:"handle_reason"`
}

// AlarmHandleRequest 批量处理报警请求
type AlarmHandleRequest struct {
	AlarmIDs []int64 `json:"alarm_ids"`
	Reason   string  `json:"reason"`
}

func (r *AlarmHandleRequest) Validate() error {
	if err := ValidateBulkIDs(r.AlarmIDs); err != nil {
		return err
	}
	return ValidateReason(r.Reason)
}

// BulkResult 批量操作结果
// 结构性校验（存在性、不变量）全有或全无；逐行应用尽力而为并逐条报告。
type BulkResult struct {
	AppliedCount int       `json:"applied_count"`
	FailedCount  int       `json:"failed_count"`
	FailedIDs    []int64   `json:"failed_ids"`
	Timestamp    time.Time `json:"timestamp"`
}
