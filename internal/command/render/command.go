// Package render 提供模板渲染命令。
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-render-liquid/internal/command"
	"github.com/lwmacct/251207-go-render-liquid/internal/config"
	"github.com/lwmacct/251207-go-render-liquid/internal/engine"
	"github.com/lwmacct/251207-go-render-liquid/internal/logging"
	"github.com/lwmacct/251207-go-render-liquid/internal/pipeline"
	pkgconfig "github.com/lwmacct/251207-go-render-liquid/pkg/config"
)

// ExitCode 任何失败时的进程退出码
const ExitCode = 8

// errNoTemplate 缺少 TEMPLATE 参数
var errNoTemplate = errors.New("missing required argument TEMPLATE")

// Command 渲染命令
var Command = NewCommand()

// NewCommand 创建渲染命令。
// cli.Command 在 Run 之后保留解析状态，测试中每次使用新实例。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      command.AppName,
		Usage:     "使用 TOML 值渲染模板",
		ArgsUsage: "TEMPLATE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "toml",
				Aliases:   []string{"t"},
				Usage:     "TOML 值文件，未指定时读取标准输入",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      "output",
				Aliases:   []string{"o"},
				Usage:     "输出文件，未指定时写入标准输出",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:    "engine",
				Aliases: []string{"e"},
				Value:   command.Defaults.Engine,
				Usage:   "模板引擎: auto, liquid, handlebars, django, gotemplate",
			},
			&cli.StringFlag{
				Name:      "config",
				Usage:     "应用配置文件路径",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: command.Defaults.Log.Level,
				Usage: "日志级别: trace, debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: command.Defaults.Log.Format,
				Usage: "日志格式: console, json",
			},
		},
		Action: action,
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "输出配置示例，或当前生效的配置",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "effective",
						Usage: "输出合并后的配置 (默认值 → 配置文件 → 环境变量 → CLI flags)",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "yaml",
						Usage: "--effective 的输出格式: yaml, json, toml",
					},
				},
				Action: configAction,
			},
			{
				Name:  "version",
				Usage: "输出版本信息",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintf(stdout(cmd), "%s %s\n", command.AppName, command.Version)
					return err
				},
			},
		},
	}
}

func action(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		if cmd.NArg() == 0 {
			return errNoTemplate
		}
		return fmt.Errorf("expected one TEMPLATE argument, got %d", cmd.NArg())
	}
	templatePath := cmd.Args().First()

	cfg, err := config.Load(cmd, command.AppName, cmd.String("config"))
	if err != nil {
		return err
	}

	if err := logging.Setup(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: stderr(cmd),
	}); err != nil {
		return err
	}
	log := logging.Get("render")

	eng, err := engine.Resolve(cfg.Engine, templatePath)
	if err != nil {
		return err
	}
	log.Debug().Str("engine", eng.Name()).Str("template", templatePath).Msg("engine selected")

	in := stdin(cmd)
	valuesPath := cmd.String("toml")
	if valuesPath == "" && logging.IsTerminal(in) {
		log.Info().Msg("reading TOML values from stdin, finish with Ctrl-D")
	}

	return pipeline.New(logging.Get("pipeline")).Run(ctx, pipeline.Options{
		TemplatePath: templatePath,
		ValuesPath:   valuesPath,
		OutputPath:   cmd.String("output"),
		Engine:       eng,
		Stdin:        in,
		Stdout:       stdout(cmd),
	})
}

func configAction(ctx context.Context, cmd *cli.Command) error {
	out := stdout(cmd)

	if !cmd.Bool("effective") {
		_, err := out.Write(pkgconfig.ExampleYAML(command.Defaults))
		return err
	}

	cfg, err := config.Load(cmd, command.AppName, cmd.String("config"))
	if err != nil {
		return err
	}

	data, err := pkgconfig.Marshal(*cfg, cmd.String("format"))
	if err != nil {
		return err
	}
	_, err = out.Write(data)

	return err
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
