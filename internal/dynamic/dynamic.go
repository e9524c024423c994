// Package dynamic 定义模板引擎使用的动态值模型。
//
// [Value] 是封闭的和类型：[Number]、[Bool]、[String]、[Array]、[Object]。
// 没有整数或时间变体，二者在转换时分别收窄为 Number 和 String。
package dynamic

import "strconv"

// Value 动态值
type Value interface {
	// Native 返回模板引擎可直接消费的 Go 值。
	Native() any
	isValue()
}

// Number 单精度浮点数
type Number float32

// Bool 布尔值
type Bool bool

// String 字符串
type String string

// Array 有序数组
type Array []Value

// Object 字符串键映射
type Object map[string]Value

// Decimal 非整数或超出 int64 范围的数值，始终以定点十进制文本输出，不使用指数形式。
type Decimal float64

// String 返回最短的定点十进制文本，1e-07 渲染为 "0.0000001"。
func (d Decimal) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64)
}

// Native 返回该 float32 的引擎表示：
//   - int64 范围内的整数值返回 int64，1048576 渲染为 "1048576" 而不是 "1.048576e+06"
//   - 其余返回 [Decimal]，值等于 float32 的最短十进制表示，456.7 渲染为 "456.7"
//
// 单精度收窄保持不变：16777217 得到 16777216。
func (n Number) Native() any {
	text := strconv.FormatFloat(float64(n), 'f', -1, 32)
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Decimal(n)
	}
	return Decimal(f)
}

func (b Bool) Native() any   { return bool(b) }
func (s String) Native() any { return string(s) }

func (a Array) Native() any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = v.Native()
	}
	return out
}

func (o Object) Native() any {
	out := make(map[string]any, len(o))
	for k, v := range o {
		out[k] = v.Native()
	}
	return out
}

func (Number) isValue() {}
func (Bool) isValue()   {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

// Context 单次渲染的名称到值的绑定。
type Context map[string]Value

// NewContext 创建空的渲染上下文
func NewContext() Context {
	return make(Context)
}

// Set 绑定 key，已存在时覆盖。
func (c Context) Set(key string, v Value) {
	c[key] = v
}

// Bindings 将整个上下文转换为 map[string]any。
func (c Context) Bindings() map[string]any {
	out := make(map[string]any, len(c))
	for k, v := range c {
		out[k] = v.Native()
	}
	return out
}
