package repository

import (
	"fmt"
	"strings"
)

// predicate 单个参数化谓词
type predicate struct {
	column string
	op     string
	value  any
}

// whereBuilder 把可选过滤字段累积为参数化谓词列表
// 行查询和计数查询从同一个 builder 渲染，保证两者谓词完全一致，
// 仅行查询追加排序和 LIMIT/OFFSET。值始终走绑定参数，不做字符串拼接。
type whereBuilder struct {
	preds []predicate
}

func newWhere() *whereBuilder {
	return &whereBuilder{}
}

// Eq 精确匹配
func (b *whereBuilder) Eq(column string, value any) *whereBuilder {
	b.preds = append(b.preds, predicate{column: column, op: "=", value: value})
	return b
}

// ILike 大小写不敏感的子串匹配
func (b *whereBuilder) ILike(column string, substr string) *whereBuilder {
	b.preds = append(b.preds, predicate{column: column, op: "ILIKE", value: "%" + substr + "%"})
	return b
}

// Gte 范围下界（含）
func (b *whereBuilder) Gte(column string, value any) *whereBuilder {
	b.preds = append(b.preds, predicate{column: column, op: ">=", value: value})
	return b
}

// Lte 范围上界（含）
func (b *whereBuilder) Lte(column string, value any) *whereBuilder {
	b.preds = append(b.preds, predicate{column: column, op: "<=", value: value})
	return b
}

// Clause 渲染 WHERE 子句和绑定参数，占位符从 $start 开始编号
// 没有谓词时返回空子句。
func (b *whereBuilder) Clause(start int) (string, []any) {
	if len(b.preds) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(b.preds))
	args := make([]any, 0, len(b.preds))
	for i, p := range b.preds {
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", p.column, p.op, start+i))
		args = append(args, p.value)
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// NextArg 下一个可用占位符编号（用于 LIMIT/OFFSET）
func (b *whereBuilder) NextArg(start int) int {
	return start + len(b.preds)
}
