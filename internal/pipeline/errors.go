package pipeline

import (
	"errors"
	"fmt"
)

// Kind 标识失败的渲染阶段
type Kind int

const (
	KindUnknown Kind = iota
	KindTemplateParse
	KindValuesRead
	KindValuesParse
	KindNotATable
	KindRender
	KindEmptyResult
	KindOutputWrite
)

func (k Kind) String() string {
	switch k {
	case KindTemplateParse:
		return "template-parse"
	case KindValuesRead:
		return "values-read"
	case KindValuesParse:
		return "values-parse"
	case KindNotATable:
		return "not-a-table"
	case KindRender:
		return "render"
	case KindEmptyResult:
		return "empty-result"
	case KindOutputWrite:
		return "output-write"
	default:
		return "unknown"
	}
}

// 各阶段的哨兵错误，配合 errors.Is 使用：
//
//	if errors.Is(err, pipeline.ErrRender) { ... }
var (
	ErrTemplateParse = &Error{Kind: KindTemplateParse}
	ErrValuesRead    = &Error{Kind: KindValuesRead}
	ErrValuesParse   = &Error{Kind: KindValuesParse}
	ErrNotATable     = &Error{Kind: KindNotATable}
	ErrRender        = &Error{Kind: KindRender}
	ErrEmptyResult   = &Error{Kind: KindEmptyResult}
	ErrOutputWrite   = &Error{Kind: KindOutputWrite}
)

// Error 渲染流水线错误。
//
// Source 为相关的路径或流名称 (stdin/stdout)，仅部分阶段使用。
type Error struct {
	Kind   Kind
	Source string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTemplateParse:
		return fmt.Sprintf("Can't parse the template at %s. %v", e.Source, e.Err)
	case KindValuesRead:
		return fmt.Sprintf("Can't read values from %s. %v", e.Source, e.Err)
	case KindValuesParse:
		return fmt.Sprintf("Can't parse TOML values. %v", e.Err)
	case KindNotATable:
		return "Can't parse the top level item in the TOML file as table."
	case KindRender:
		return fmt.Sprintf("Can't render the template. %v", e.Err)
	case KindEmptyResult:
		return "Nothing to render"
	case KindOutputWrite:
		return fmt.Sprintf("Can't write to %s. %v", e.Source, e.Err)
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "unknown pipeline error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is 按 Kind 匹配，忽略 Source 与 Err
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind
}

// KindOf 返回 err 链中第一个 [*Error] 的 Kind，没有时返回 [KindUnknown]
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

func newError(kind Kind, source string, err error) *Error {
	return &Error{Kind: kind, Source: source, Err: err}
}
