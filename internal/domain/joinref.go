package domain

import "database/sql"

// UnknownName 自然键关联落空时的展示占位值
const UnknownName = "Unknown"

// JoinRef 自然键关联结果
// alarms.imei / route_list.terminal_id 等字段通过字符串相等关联 tags /
// tracking_objects，允许关联落空（孤儿行）。列表和单条查询必须使用
// 同一套解析逻辑，避免同一条记录在两条路径上显示不一致。
type JoinRef struct {
	Name    string
	Matched bool
}

// JoinRefFrom 从 LEFT JOIN 扫描结果构建
func JoinRefFrom(ns sql.NullString) JoinRef {
	if ns.Valid && ns.String != "" {
		return JoinRef{Name: ns.String, Matched: true}
	}
	return JoinRef{}
}

// DisplayName 展示名称；未匹配时返回 "Unknown"
func (r JoinRef) DisplayName() string {
	if r.Matched {
		return r.Name
	}
	return UnknownName
}
