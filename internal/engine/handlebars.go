package engine

import (
	"reflect"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/lwmacct/251207-go-render-liquid/internal/dynamic"
)

type handlebarsEngine struct{}

// NewHandlebars 创建 Handlebars 引擎
func NewHandlebars() Engine {
	return handlebarsEngine{}
}

func (handlebarsEngine) Name() string { return "handlebars" }

func (handlebarsEngine) Parse(_, source string) (Template, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, err
	}
	tpl.RegisterHelpers(handlebarsHelpers)

	return &handlebarsTemplate{tpl: tpl}, nil
}

type handlebarsTemplate struct {
	tpl *raymond.Template
}

func (t *handlebarsTemplate) Render(ctx dynamic.Context) (string, error) {
	return t.tpl.Exec(ctx.Bindings())
}

// handlebarsHelpers 按模板注册，不修改 raymond 的全局 helper 表。
var handlebarsHelpers = map[string]interface{}{
	"upcase": func(value interface{}) string {
		return strings.ToUpper(raymond.Str(value))
	},
	"downcase": func(value interface{}) string {
		return strings.ToLower(raymond.Str(value))
	},
	"trim": func(value interface{}) string {
		return strings.TrimSpace(raymond.Str(value))
	},
	// default 第一个参数为空时返回默认值
	"default": func(value, defaultValue interface{}) interface{} {
		if value == nil || value == "" {
			return defaultValue
		}
		return value
	},
	"eq": func(a, b interface{}) bool {
		return raymond.Str(a) == raymond.Str(b)
	},
	"join": func(list interface{}, sep string) string {
		v := reflect.ValueOf(list)
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return raymond.Str(list)
		}
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = raymond.Str(v.Index(i).Interface())
		}
		return strings.Join(parts, sep)
	},
	"len": func(value interface{}) int {
		v := reflect.ValueOf(value)
		switch v.Kind() {
		case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
			return v.Len()
		default:
			return 0
		}
	},
}
