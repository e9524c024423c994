package engine

import (
	"github.com/osteele/liquid"

	"github.com/lwmacct/251207-go-render-liquid/internal/dynamic"
)

type liquidEngine struct {
	eng *liquid.Engine
}

// NewLiquid 创建 Liquid 引擎
func NewLiquid() Engine {
	return &liquidEngine{eng: liquid.NewEngine()}
}

func (e *liquidEngine) Name() string { return "liquid" }

func (e *liquidEngine) Parse(_, source string) (Template, error) {
	tpl, err := e.eng.ParseString(source)
	if err != nil {
		return nil, err
	}

	return &liquidTemplate{tpl: tpl}, nil
}

type liquidTemplate struct {
	tpl *liquid.Template
}

func (t *liquidTemplate) Render(ctx dynamic.Context) (string, error) {
	out, err := t.tpl.RenderString(ctx.Bindings())
	if err != nil {
		return "", err
	}

	return out, nil
}
