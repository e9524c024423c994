// Package convert 将 TOML 文档树转换为模板引擎的动态值树。
//
// 映射规则：
//   - Integer, Float → Number (收窄为 float32)
//   - Boolean → Bool
//   - String → String
//   - Timestamp → String (规范文本)
//   - Sequence → Array (逐元素转换，保持顺序)
//   - Table → Object (逐值转换，键原样保留)
//
// 转换是全函数：每个变体都有定义的映射，不存在错误路径。
package convert

import (
	"errors"

	"github.com/lwmacct/251207-go-render-liquid/internal/document"
	"github.com/lwmacct/251207-go-render-liquid/internal/dynamic"
)

// ErrNotATable 文档根节点不是表
var ErrNotATable = errors.New("top level item is not a table")

// converter 每个变体一个方法，缺少任何一个都无法满足 document.Visitor。
type converter struct {
	out dynamic.Value
}

var _ document.Visitor = (*converter)(nil)

// Convert 递归转换 node。
func Convert(node document.Node) dynamic.Value {
	var c converter
	node.Accept(&c)
	return c.out
}

func (c *converter) VisitInteger(n document.Integer) {
	c.out = dynamic.Number(float32(n))
}

func (c *converter) VisitFloat(n document.Float) {
	c.out = dynamic.Number(float32(n))
}

func (c *converter) VisitBoolean(n document.Boolean) {
	c.out = dynamic.Bool(n)
}

func (c *converter) VisitString(n document.String) {
	c.out = dynamic.String(n)
}

func (c *converter) VisitTimestamp(n document.Timestamp) {
	c.out = dynamic.String(n.Text)
}

func (c *converter) VisitSequence(n document.Sequence) {
	arr := make(dynamic.Array, len(n))
	for i, item := range n {
		arr[i] = Convert(item)
	}
	c.out = arr
}

func (c *converter) VisitTable(n document.Table) {
	obj := make(dynamic.Object, len(n))
	for key, item := range n {
		obj[key] = Convert(item)
	}
	c.out = obj
}

// Build 由根表构建渲染上下文，每个顶层键一个绑定。
//
// 根节点不是表时返回 [ErrNotATable]，不返回部分上下文。
// 空表得到空的有效上下文。
func Build(node document.Node) (dynamic.Context, error) {
	table, ok := node.(document.Table)
	if !ok {
		return nil, ErrNotATable
	}

	ctx := dynamic.NewContext()
	for key, value := range table {
		ctx.Set(key, Convert(value))
	}

	return ctx, nil
}
