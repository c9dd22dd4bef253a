package domain

import "strings"

// TrackingObject 被跟踪对象
// mac 字段作为自然键关联 Tag.imei（无外键约束，允许落空）。
type TrackingObject struct {
	SN           int64   `json:"sn"`
	Organization string  `json:"organization"`
	Name         string  `json:"name"`
	Role         *string `json:"role"`
	Mac          *string `json:"mac"`
}

// TrackingObjectCreate 创建被跟踪对象请求
type TrackingObjectCreate struct {
	Organization string  `json:"organization"`
	Name         string  `json:"name"`
	Role         *string `json:"role"`
	Mac          *string `json:"mac"`
}

func (c *TrackingObjectCreate) Validate() error {
	c.Organization = strings.TrimSpace(c.Organization)
	if c.Organization == "" {
		return Validationf("organization is required")
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return Validationf("name cannot be empty")
	}
	if len(c.Name) > 100 {
		return Validationf("name cannot exceed 100 characters")
	}
	if c.Mac != nil && *c.Mac != "" {
		if err := ValidateMAC(*c.Mac); err != nil {
			return err
		}
	}
	return nil
}

// TrackingObjectUpdate 更新被跟踪对象请求（字段均可选）
type TrackingObjectUpdate struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
	Mac  *string `json:"mac"`
}

func (u *TrackingObjectUpdate) Validate() error {
	if u.Name == nil && u.Role == nil && u.Mac == nil {
		return Validationf("no fields to update")
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return Validationf("name cannot be empty")
		}
		if len(name) > 100 {
			return Validationf("name cannot exceed 100 characters")
		}
		u.Name = &name
	}
	if u.Mac != nil && *u.Mac != "" {
		if err := ValidateMAC(*u.Mac); err != nil {
			return err
		}
	}
	return nil
}
