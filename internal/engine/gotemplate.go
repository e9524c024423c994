package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/lwmacct/251207-go-render-liquid/internal/dynamic"
)

// valueFuncs text/template 引擎额外提供的函数，参数均为 TOML 值的引擎表示。
var valueFuncs = template.FuncMap{
	"env":      envOr,
	"default":  orDefault,
	"coalesce": firstSet,
}

// envOr 返回环境变量 key，未设置或为空时回退到 fallback，常用于覆盖 TOML 中的值：
//
//	{{env "HOST" .server.host}}
func envOr(key string, fallback ...any) any {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if len(fallback) > 0 {
		return fallback[0]
	}

	return ""
}

// orDefault 在 TOML 中缺失或为空的值上替换默认值，参数顺序便于管道使用：
//
//	{{.port | default 8080}}
func orDefault(fallback, value any) any {
	if unset(value) {
		return fallback
	}

	return value
}

// firstSet 返回第一个已设置的值，全部未设置时返回 nil：
//
//	{{coalesce .listen.host .host "0.0.0.0"}}
func firstSet(values ...any) any {
	for _, v := range values {
		if !unset(v) {
			return v
		}
	}

	return nil
}

// unset 缺失的键、空字符串、空数组与空表视为未设置；false 与 0 是有效值。
func unset(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}

	return false
}

type goTemplateEngine struct{}

// NewGoTemplate 创建 text/template 引擎。
//
// 值通过 {{.key}} 访问，缺失的键渲染为 "<no value>"。
func NewGoTemplate() Engine {
	return goTemplateEngine{}
}

func (goTemplateEngine) Name() string { return "gotemplate" }

func (goTemplateEngine) Parse(name, source string) (Template, error) {
	tplName := "template"
	if name != "" {
		tplName = filepath.Base(name)
	}

	tpl, err := template.New(tplName).Funcs(valueFuncs).Parse(source)
	if err != nil {
		return nil, err
	}

	return &goTemplate{tpl: tpl}, nil
}

type goTemplate struct {
	tpl *template.Template
}

func (t *goTemplate) Render(ctx dynamic.Context) (string, error) {
	var buf bytes.Buffer
	if err := t.tpl.Execute(&buf, ctx.Bindings()); err != nil {
		return "", err
	}

	return buf.String(), nil
}
