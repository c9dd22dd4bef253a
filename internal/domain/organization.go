package domain

import (
	"strings"
	"time"
)

// Organization 组织（多租户根实体）
type Organization struct {
	ID               int64      `json:"id"`
	OrganizationName string     `json:"organization_name"`
	Title            string     `json:"title"`
	ProductType      *string    `json:"product_type"`
	CreateTime       *time.Time `json:"create_time"`
}

// OrganizationRef 下拉列表用的组织摘要
type OrganizationRef struct {
	ID               int64  `json:"id"`
	OrganizationName string `json:"organization_name"`
	Title            string `json:"title"`
}

// OrganizationCreate 创建组织请求
type OrganizationCreate struct {
	OrganizationName string  `json:"organization_name"`
	Title            string  `json:"title"`
	ProductType      *string `json:"product_type"`
}

func (c *OrganizationCreate) Validate() error {
	c.OrganizationName = strings.TrimSpace(c.OrganizationName)
	if err := ValidateOrganizationName(c.OrganizationName); err != nil {
		return err
	}
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return Validationf("title cannot be empty")
	}
	if len(c.Title) > 100 {
		return Validationf("title cannot exceed 100 characters")
	}
	if c.ProductType != nil {
		pt := strings.TrimSpace(*c.ProductType)
		if len(pt) > 100 {
			return Validationf("product type cannot exceed 100 characters")
		}
		c.ProductType = &pt
	}
	return nil
}

// OrganizationUpdate 更新组织请求（字段均可选）
type OrganizationUpdate struct {
	OrganizationName *string `json:"organization_name"`
	Title            *string `json:"title"`
	ProductType      *string `json:"product_type"`
}

func (u *OrganizationUpdate) Validate() error {
	if u.OrganizationName == nil && u.Title == nil && u.ProductType == nil {
		return Validationf("no fields to update")
	}
	if u.OrganizationName != nil {
		name := strings.TrimSpace(*u.OrganizationName)
		if err := ValidateOrganizationName(name); err != nil {
			return err
		}
		u.OrganizationName = &name
	}
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return Validationf("title cannot be empty")
		}
		if len(title) > 100 {
			return Validationf("title cannot exceed 100 characters")
		}
		u.Title = &title
	}
	if u.ProductType != nil {
		pt := strings.TrimSpace(*u.ProductType)
		if len(pt) > 100 {
			return Validationf("product type cannot exceed 100 characters")
		}
		u.ProductType = &pt
	}
	return nil
}
