package domain

// Role 组织内的对象角色（只读目录）
type Role struct {
	SN           int64   `json:"sn"`
	Organization string  `json:"organization"`
	Name         string  `json:"name"`
	Color        *string `json:"color"`
}
