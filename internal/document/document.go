// Package document 定义 TOML 值文档的类型化模型。
//
// [Node] 是一个封闭的和类型，变体为 [Integer]、[Float]、[Boolean]、[String]、
// [Timestamp]、[Sequence] 和 [Table]。对节点的处理通过 [Visitor] 完成：
// 新增变体必须同时在 Visitor 上新增方法，所有实现者在编译期即被要求补全。
package document

// Kind 节点变体
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBoolean
	KindString
	KindTimestamp
	KindSequence
	KindTable
)

var kindNames = [...]string{
	KindInteger:   "integer",
	KindFloat:     "float",
	KindBoolean:   "boolean",
	KindString:    "string",
	KindTimestamp: "timestamp",
	KindSequence:  "sequence",
	KindTable:     "table",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node TOML 文档中的一个值
type Node interface {
	// Kind 返回节点变体
	Kind() Kind
	// Accept 将节点分派给 v 上对应变体的方法
	Accept(v Visitor)
}

// Visitor 对每个变体各有一个方法。
type Visitor interface {
	VisitInteger(Integer)
	VisitFloat(Float)
	VisitBoolean(Boolean)
	VisitString(String)
	VisitTimestamp(Timestamp)
	VisitSequence(Sequence)
	VisitTable(Table)
}

// Integer 64 位有符号整数
type Integer int64

// Float 64 位浮点数
type Float float64

// Boolean 布尔值
type Boolean bool

// String UTF-8 字符串
type String string

// TimestampKind TOML 日期时间的四种形式
type TimestampKind int

const (
	OffsetDateTime TimestampKind = iota
	LocalDateTime
	LocalDate
	LocalTime
)

// Timestamp 日期时间值，Form 为 TOML 中的形式，Text 为其文本。
type Timestamp struct {
	Form TimestampKind
	Text string
}

// Sequence 有序数组
type Sequence []Node

// Table 键唯一的表
type Table map[string]Node

func (Integer) Kind() Kind   { return KindInteger }
func (Float) Kind() Kind     { return KindFloat }
func (Boolean) Kind() Kind   { return KindBoolean }
func (String) Kind() Kind    { return KindString }
func (Timestamp) Kind() Kind { return KindTimestamp }
func (Sequence) Kind() Kind  { return KindSequence }
func (Table) Kind() Kind     { return KindTable }

func (n Integer) Accept(v Visitor)   { v.VisitInteger(n) }
func (n Float) Accept(v Visitor)     { v.VisitFloat(n) }
func (n Boolean) Accept(v Visitor)   { v.VisitBoolean(n) }
func (n String) Accept(v Visitor)    { v.VisitString(n) }
func (n Timestamp) Accept(v Visitor) { v.VisitTimestamp(n) }
func (n Sequence) Accept(v Visitor)  { v.VisitSequence(n) }
func (n Table) Accept(v Visitor)     { v.VisitTable(n) }

// String 返回时间戳的规范文本
func (t Timestamp) String() string { return t.Text }
