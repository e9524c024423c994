package document

import (
	"fmt"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Parse 解析 TOML 文本，返回根表。
//
// 空文本得到空表。
func Parse(text string) (Node, error) {
	var raw map[string]any
	if err := toml.Unmarshal([]byte(text), &raw); err != nil {
		return nil, err
	}

	return FromNative(raw)
}

// FromNative 将 go-toml 解码到 any 时产生的 Go 值提升为 [Node]。
//
// 支持的类型：
//   - int64, int → Integer
//   - float64 → Float
//   - bool → Boolean
//   - string → String
//   - time.Time, toml.LocalDateTime, toml.LocalDate, toml.LocalTime → Timestamp
//   - []any → Sequence
//   - map[string]any → Table
func FromNative(v any) (Node, error) {
	switch v := v.(type) {
	case int64:
		return Integer(v), nil
	case int:
		return Integer(v), nil
	case float64:
		return Float(v), nil
	case bool:
		return Boolean(v), nil
	case string:
		return String(v), nil
	case time.Time:
		return Timestamp{Form: OffsetDateTime, Text: v.Format(time.RFC3339Nano)}, nil
	case toml.LocalDateTime:
		return Timestamp{Form: LocalDateTime, Text: v.String()}, nil
	case toml.LocalDate:
		return Timestamp{Form: LocalDate, Text: v.String()}, nil
	case toml.LocalTime:
		return Timestamp{Form: LocalTime, Text: v.String()}, nil
	case []any:
		seq := make(Sequence, len(v))
		for i, item := range v {
			node, err := FromNative(item)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			seq[i] = node
		}
		return seq, nil
	case map[string]any:
		table := make(Table, len(v))
		for key, item := range v {
			node, err := FromNative(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			table[key] = node
		}
		return table, nil
	default:
		return nil, fmt.Errorf("unsupported TOML value of type %T", v)
	}
}
