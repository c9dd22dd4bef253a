package models

// 分页默认值与上限
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination 分页窗口与结果总数
// TotalRecords 始终是去掉 LIMIT/OFFSET 后的总数，调用方可据此独立计算总页数；
// 请求超出数据范围的页返回空行集和同样的 TotalRecords，不报错。
type Pagination struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalRecords int `json:"total_records"`
}

// Normalize 规整非法的 page/page_size
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset 计算行偏移
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
