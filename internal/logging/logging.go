// Package logging 基于 zerolog 配置进程日志。
//
// 日志写入 stderr，默认级别 warn，成功运行时不输出任何内容。
// console 格式仅在输出为终端时着色。
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// FormatConsole 人类可读格式
	FormatConsole = "console"
	// FormatJSON 每行一个 JSON 对象
	FormatJSON = "json"
)

// DefaultLevel 默认日志级别
const DefaultLevel = "warn"

// Options 日志配置
type Options struct {
	// Level trace/debug/info/warn/error，为空时使用 [DefaultLevel]
	Level string
	// Format console/json，为空时使用 console
	Format string
	// Writer 输出目标，为 nil 时使用 os.Stderr
	Writer io.Writer
}

// New 按 opts 创建 logger
func New(opts Options) (zerolog.Logger, error) {
	levelName := opts.Level
	if levelName == "" {
		levelName = DefaultLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(levelName)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	switch strings.ToLower(opts.Format) {
	case "", FormatConsole:
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    !IsTerminal(w),
		}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (want %s or %s)", opts.Format, FormatConsole, FormatJSON)
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger, nil
}

// Setup 按 opts 创建 logger 并设置为全局 logger
func Setup(opts Options) error {
	logger, err := New(opts)
	if err != nil {
		return err
	}
	log.Logger = logger

	return nil
}

// Get 返回带 component 字段的全局 logger
func Get(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// IsTerminal 判断 w 是否为终端
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
