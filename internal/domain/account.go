package domain

import "strings"

// 账号权限级别
const (
	PermissionAdmin   = "admin"
	PermissionManager = "manager"
	PermissionUser    = "user"
	PermissionViewer  = "viewer"
)

var validPermissions = map[string]bool{
	PermissionAdmin:   true,
	PermissionManager: true,
	PermissionUser:    true,
	PermissionViewer:  true,
}

// ValidatePermission 权限必须是枚举值之一
func ValidatePermission(p string) error {
	if !validPermissions[p] {
		return Validationf("permission must be one of: admin, manager, user, viewer")
	}
	return nil
}

// Account 账号（属于唯一组织，(organization, account) 唯一）
type Account struct {
	SN               int64   `json:"sn"`
	Organization     string  `json:"organization"`
	Account          string  `json:"account"`
	Permission       string  `json:"permission"`
	LoginFreeAddress *string `json:"login_free_address"`
}

// AccountCreate 创建账号请求
type AccountCreate struct {
	Organization     string  `json:"organization"`
	Account          string  `json:"account"`
	Permission       string  `json:"permission"`
	LoginFreeAddress *string `json:"login_free_address"`
}

func (c *AccountCreate) Validate() error {
	c.Organization = strings.TrimSpace(c.Organization)
	if c.Organization == "" {
		return Validationf("organization is required")
	}
	c.Account = strings.TrimSpace(c.Account)
	if err := ValidateAccountName(c.Account); err != nil {
		return err
	}
	if err := ValidatePermission(c.Permission); err != nil {
		return err
	}
	if c.LoginFreeAddress != nil {
		if err := ValidateLoginFreeAddress(*c.LoginFreeAddress); err != nil {
			return err
		}
	}
	return nil
}

// AccountUpdate 更新账号请求（字段均可选）
type AccountUpdate struct {
	Account          *string `json:"account"`
	Permission       *string `json:"permission"`
	LoginFreeAddress *string `json:"login_free_address"`
}

func (u *AccountUpdate) Validate() error {
	if u.Account == nil && u.Permission == nil && u.LoginFreeAddress == nil {
		return Validationf("no fields to update")
	}
	if u.Account != nil {
		name := strings.TrimSpace(*u.Account)
		if err := ValidateAccountName(name); err != nil {
			return err
		}
		u.Account = &name
	}
	if u.Permission != nil {
		if err := ValidatePermission(*u.Permission); err != nil {
			return err
		}
	}
	if u.LoginFreeAddress != nil {
		if err := ValidateLoginFreeAddress(*u.LoginFreeAddress); err != nil {
			return err
		}
	}
	return nil
}
