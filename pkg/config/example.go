package config

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	yamlv3 "go.yaml.in/yaml/v3"
)

// ExampleYAML 将配置结构体序列化为带注释的 YAML。
//
// 通过 desc tag 生成注释，适用于生成 config.example.yaml。
//
//	yaml := config.ExampleYAML(DefaultConfig())
//	os.WriteFile("config/config.example.yaml", yaml, 0644)
func ExampleYAML[T any](cfg T) []byte {
	node := structToNode(reflect.ValueOf(cfg), reflect.TypeOf(cfg))
	node.HeadComment = "配置示例文件, 复制此文件为 config.yaml 并根据需要修改"

	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	_ = enc.Encode(node)
	_ = enc.Close()

	return buf.Bytes()
}

// Marshal 将配置结构体序列化为 format (yaml/json/toml)，不带注释。
func Marshal[T any](cfg T, format string) ([]byte, error) {
	parser, err := parserForFormat(format)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return k.Marshal(parser)
}

// structToNode 将结构体转换为带注释的 yamlv3.Node。
func structToNode(val reflect.Value, typ reflect.Type) *yamlv3.Node {
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: "!!null"}
		}
		val = val.Elem()
		typ = typ.Elem()
	}

	node := &yamlv3.Node{Kind: yamlv3.MappingNode}

	for i := range typ.NumField() {
		field := typ.Field(i)
		key := field.Tag.Get("koanf")
		if key == "" {
			continue
		}
		comment := field.Tag.Get("desc")

		keyNode := &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: key}

		var valNode *yamlv3.Node
		switch kind := field.Type.Kind(); {
		case kind == reflect.Struct && field.Type != reflect.TypeFor[time.Time]():
			valNode = structToNode(val.Field(i), field.Type)
			keyNode.HeadComment = "\n" + comment
		case kind == reflect.Slice || kind == reflect.Map:
			valNode = valueToNode(val.Field(i))
			keyNode.HeadComment = "\n" + comment
		default:
			valNode = valueToNode(val.Field(i))
			// 多行注释放在 key 上方，单行注释放在行尾
			if strings.Contains(comment, "\n") {
				keyNode.HeadComment = "\n" + comment
			} else {
				valNode.LineComment = comment
			}
		}

		node.Content = append(node.Content, keyNode, valNode)
	}

	return node
}

// valueToNode 将标量、切片或 map 转换为 yamlv3.Node。
func valueToNode(val reflect.Value) *yamlv3.Node {
	switch v := val.Interface().(type) {
	case time.Duration:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: v.String()}
	case time.Time:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: v.Format(time.RFC3339)}
	}

	switch val.Kind() {
	case reflect.String:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: val.String(), Style: yamlv3.DoubleQuotedStyle}
	case reflect.Bool:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: strconv.FormatBool(val.Bool())}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: strconv.FormatInt(val.Int(), 10)}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: strconv.FormatUint(val.Uint(), 10)}
	case reflect.Float32, reflect.Float64:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: strconv.FormatFloat(val.Float(), 'g', -1, 64)}
	case reflect.Slice:
		node := &yamlv3.Node{Kind: yamlv3.SequenceNode}
		if val.Len() == 0 {
			node.Style = yamlv3.FlowStyle
		}
		for j := range val.Len() {
			elem := valueToNode(val.Index(j))
			elem.Style = 0
			node.Content = append(node.Content, elem)
		}
		return node
	case reflect.Map:
		node := &yamlv3.Node{Kind: yamlv3.MappingNode}
		if val.Len() == 0 {
			node.Style = yamlv3.FlowStyle
		}
		iter := val.MapRange()
		for iter.Next() {
			node.Content = append(node.Content,
				&yamlv3.Node{Kind: yamlv3.ScalarNode, Value: fmt.Sprint(iter.Key().Interface())},
				valueToNode(iter.Value()),
			)
		}
		return node
	default:
		return &yamlv3.Node{Kind: yamlv3.ScalarNode, Value: fmt.Sprint(val.Interface())}
	}
}
