package domain

import (
	"regexp"
	"strings"
	"time"
)

var (
	orgNameRe     = regexp.MustCompile(`^[a-z0-9_-]+$`)
	accountNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	macRe         = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`)
	ipv4Re        = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)
	urlRe         = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)
)

// ValidateOrganizationName 组织名规则：3-50字符，仅小写字母/数字/下划线/连字符
func ValidateOrganizationName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return Validationf("organization name cannot be empty")
	}
	if len(name) < 3 {
		return Validationf("organization name must be at least 3 characters")
	}
	if len(name) > 50 {
		return Validationf("organization name cannot exceed 50 characters")
	}
	if !orgNameRe.MatchString(name) {
		return Validationf("organization name can only contain lowercase letters, numbers, underscores, and hyphens")
	}
	return nil
}

// ValidateAccountName 账号名规则：非空，≤50字符，字母/数字/下划线/连字符
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return Validationf("account name cannot be empty")
	}
	if len(name) > 50 {
		return Validationf("account name cannot exceed 50 characters")
	}
	if !accountNameRe.MatchString(name) {
		return Validationf("account name can only contain letters, numbers, underscores, and hyphens")
	}
	return nil
}

// ValidateMAC MAC地址：6组冒号或连字符分隔的十六进制字节
func ValidateMAC(mac string) error {
	if !macRe.MatchString(mac) {
		return Validationf("invalid MAC address format, use XX:XX:XX:XX:XX:XX or XX-XX-XX-XX-XX-XX")
	}
	return nil
}

// ValidateLoginFreeAddress 免登录地址：IPv4 或 http(s) URL
func ValidateLoginFreeAddress(addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}
	if ipv4Re.MatchString(addr) || urlRe.MatchString(addr) {
		return nil
	}
	return Validationf("login-free address must be a valid IP address or URL")
}

// ValidateTimeRange 时间范围：两端都给定时 end 必须晚于 start
func ValidateTimeRange(start, end *time.Time) error {
	if start != nil && end != nil && !end.After(*start) {
		return Validationf("end time must be after start time")
	}
	return nil
}

// ValidateBulkIDs 批量操作目标ID集合：非空、≤100、无重复
// 在进入批量事务之前拒绝，属于输入校验而非事务失败。
func ValidateBulkIDs(ids []int64) error {
	if len(ids) == 0 {
		return Validationf("at least one ID must be provided")
	}
	if len(ids) > 100 {
		return Validationf("cannot operate on more than 100 records at once")
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return Validationf("duplicate IDs are not allowed")
		}
		seen[id] = struct{}{}
	}
	return nil
}

// ValidateReason 操作原因：≤500字符（去除首尾空白后）
func ValidateReason(reason string) error {
	if len(strings.TrimSpace(reason)) > 500 {
		return Validationf("reason cannot exceed 500 characters")
	}
	return nil
}
