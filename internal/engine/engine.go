// Package engine 提供模板引擎适配器。
//
// 每个引擎把模板文本编译为 [Template]，再以 [dynamic.Context] 渲染。
// 可用引擎：
//   - liquid (默认): github.com/osteele/liquid
//   - handlebars: github.com/aymerick/raymond
//   - django: github.com/flosch/pongo2/v6
//   - gotemplate: text/template，附带 env/default/coalesce 函数
package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lwmacct/251207-go-render-liquid/internal/dynamic"
)

// Default 默认引擎名称
const Default = "liquid"

// Auto 按模板扩展名选择引擎
const Auto = "auto"

// ErrUnknownEngine 未注册的引擎名称
var ErrUnknownEngine = errors.New("unknown template engine")

// Engine 模板引擎
type Engine interface {
	// Name 返回引擎名称
	Name() string
	// Parse 编译模板。name 为模板路径，用于错误信息和相对引用。
	Parse(name, source string) (Template, error)
}

// Template 已编译的模板
type Template interface {
	// Render 以 ctx 渲染模板
	Render(ctx dynamic.Context) (string, error)
}

var constructors = map[string]func() Engine{
	"liquid":     NewLiquid,
	"handlebars": NewHandlebars,
	"django":     NewDjango,
	"gotemplate": NewGoTemplate,
}

// extensions 扩展名 → 引擎名称
var extensions = map[string]string{
	".liquid":     "liquid",
	".hbs":        "handlebars",
	".handlebars": "handlebars",
	".django":     "django",
	".j2":         "django",
	".pongo":      "django",
	".tmpl":       "gotemplate",
	".gotmpl":     "gotemplate",
}

// Names 返回已注册的引擎名称（排序）
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Lookup 按名称创建引擎
func Lookup(name string) (Engine, error) {
	ctor, ok := constructors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownEngine, name, strings.Join(Names(), ", "))
	}

	return ctor(), nil
}

// ForPath 按模板扩展名选择引擎，无法识别时使用 fallback。
func ForPath(path, fallback string) (Engine, error) {
	if name, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return Lookup(name)
	}

	return Lookup(fallback)
}

// Resolve 解析引擎选择：name 为 [Auto] 时按扩展名，否则按名称。
func Resolve(name, templatePath string) (Engine, error) {
	if strings.EqualFold(strings.TrimSpace(name), Auto) {
		return ForPath(templatePath, Default)
	}

	return Lookup(name)
}
