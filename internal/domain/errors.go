package domain

import (
	"errors"
	"fmt"
)

// Kind 错误分类（闭合枚举）
// 调用方通过 KindOf 分支处理，不使用异常式控制流。
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
)

// Error 业务错误
// IDs 记录违反约束的目标ID（如批量操作中缺失或已处理的记录）。
type Error struct {
	Kind    Kind
	Message string
	IDs     []int64
}

func (e *Error) Error() string {
	if len(e.IDs) > 0 {
		return fmt.Sprintf("%s: %v", e.Message, e.IDs)
	}
	return e.Message
}

// Validationf 输入校验错误
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf 目标不存在错误
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflictf 冲突错误（唯一性冲突、跨组织混用、终态重复处理）
func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// WithIDs 附加目标ID列表
func (e *Error) WithIDs(ids []int64) *Error {
	e.IDs = ids
	return e
}

// KindOf 返回错误分类；非业务错误一律视为 KindInternal
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
