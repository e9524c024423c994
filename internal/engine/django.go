package engine

import (
	"fmt"
	"path/filepath"

	"github.com/flosch/pongo2/v6"

	"github.com/lwmacct/251207-go-render-liquid/internal/dynamic"
)

type djangoEngine struct{}

// NewDjango 创建 Django 风格 (pongo2) 引擎。
// 模板加载器以模板文件所在目录为根。
func NewDjango() Engine {
	return djangoEngine{}
}

func (djangoEngine) Name() string { return "django" }

func (djangoEngine) Parse(name, source string) (Template, error) {
	baseDir := "."
	if name != "" {
		baseDir = filepath.Dir(name)
	}

	loader, err := pongo2.NewLocalFileSystemLoader(baseDir)
	if err != nil {
		return nil, fmt.Errorf("create template loader: %w", err)
	}

	set := pongo2.NewSet("render-liquid", loader)
	tpl, err := set.FromString(source)
	if err != nil {
		return nil, err
	}

	return &djangoTemplate{tpl: tpl}, nil
}

type djangoTemplate struct {
	tpl *pongo2.Template
}

func (t *djangoTemplate) Render(ctx dynamic.Context) (string, error) {
	return t.tpl.Execute(pongo2.Context(ctx.Bindings()))
}
