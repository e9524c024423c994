// Package pipeline 串联一次渲染的全部阶段。
//
// 阶段顺序固定，遇到第一个失败立即返回 [*Error]：
//
//	读取并解析模板 → 读取值文本 → 解析 TOML → 构建上下文 → 渲染 → 写出
//
// 输出文件只在渲染成功后才创建，失败时不会留下部分输出。
package pipeline

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/lwmacct/251207-go-render-liquid/internal/convert"
	"github.com/lwmacct/251207-go-render-liquid/internal/document"
	"github.com/lwmacct/251207-go-render-liquid/internal/engine"
	"github.com/lwmacct/251207-go-render-liquid/internal/logging"
	"github.com/lwmacct/251207-go-render-liquid/internal/stream"
)

// errNoTemplate 未指定模板路径
var errNoTemplate = errors.New("no template path given")

// Options 单次渲染参数
type Options struct {
	// TemplatePath 模板文件路径（必填）
	TemplatePath string
	// ValuesPath TOML 值文件路径，为空时读取 Stdin
	ValuesPath string
	// OutputPath 输出文件路径，为空时写入 Stdout
	OutputPath string
	// Engine 模板引擎，为 nil 时使用 [engine.Default]
	Engine engine.Engine
	// Stdin 默认值来源，为 nil 时使用 os.Stdin
	Stdin io.Reader
	// Stdout 默认输出目标，为 nil 时使用 os.Stdout
	Stdout io.Writer
}

// Pipeline 渲染流水线
type Pipeline struct {
	log zerolog.Logger
}

// New 创建流水线，各阶段以 debug 级别写入 log。
func New(log zerolog.Logger) *Pipeline {
	return &Pipeline{log: log}
}

// Run 使用 "pipeline" 组件日志执行一次渲染。
func Run(ctx context.Context, opts Options) error {
	return New(logging.Get("pipeline")).Run(ctx, opts)
}

// Run 执行一次渲染。
func (p *Pipeline) Run(ctx context.Context, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	eng := opts.Engine
	if eng == nil {
		var err error
		if eng, err = engine.Lookup(engine.Default); err != nil {
			return err
		}
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	log := p.log.With().Str("engine", eng.Name()).Str("template", opts.TemplatePath).Logger()

	// 1. 模板
	tpl, err := parseTemplate(eng, opts.TemplatePath)
	if err != nil {
		return newError(KindTemplateParse, opts.TemplatePath, err)
	}
	log.Debug().Msg("template parsed")

	// 2. 值文本
	text, source, err := stream.ReadAll(opts.ValuesPath, stdin)
	if err != nil {
		return newError(KindValuesRead, source, err)
	}
	log.Debug().Str("source", source).Int("bytes", len(text)).Msg("values read")

	// 3. TOML
	doc, err := document.Parse(text)
	if err != nil {
		return newError(KindValuesParse, source, err)
	}

	// 4. 上下文
	values, err := convert.Build(doc)
	if err != nil {
		return newError(KindNotATable, source, err)
	}
	log.Debug().Int("bindings", len(values)).Msg("context built")

	// 5. 渲染
	rendered, err := tpl.Render(values)
	if err != nil {
		return newError(KindRender, opts.TemplatePath, err)
	}
	if rendered == "" {
		return newError(KindEmptyResult, opts.TemplatePath, nil)
	}
	log.Debug().Int("bytes", len(rendered)).Msg("template rendered")

	if err := ctx.Err(); err != nil {
		return err
	}

	// 6. 写出
	sink, err := stream.WriteAll(opts.OutputPath, stdout, rendered)
	if err != nil {
		return newError(KindOutputWrite, sink, err)
	}
	log.Debug().Str("sink", sink).Msg("output written")

	return nil
}

func parseTemplate(eng engine.Engine, path string) (engine.Template, error) {
	if path == "" {
		return nil, errNoTemplate
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return eng.Parse(path, string(source))
}
