// Author: lwmacct (https://github.com/lwmacct)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli/v3"
)

// ErrUnsupportedFormat 无法识别的配置文件格式
var ErrUnsupportedFormat = errors.New("unsupported config format")

// DefaultPaths 返回默认配置文件搜索路径
// appName 可选，若提供则包含用户配置目录 (XDG) 和系统配置目录
func DefaultPaths(appName ...string) []string {
	paths := []string{
		"config.yaml",
		"config/config.yaml",
	}

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths,
			filepath.Join(xdg.ConfigHome, name, "config.yaml"),
			"/etc/"+name+"/config.yaml",
		)
	}

	return paths
}

// Option 配置加载选项
type Option func(*options)

type options struct {
	configPaths []string
	configFile  string
	rawData     []byte
	rawFormat   string
	envPrefix   string
	envEnabled  bool
	envBindings map[string]string
	cmd         *cli.Command
}

// WithConfigPaths 设置配置文件搜索路径，使用第一个存在的文件
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = append(o.configPaths, paths...)
	}
}

// WithConfigFile 指定配置文件，文件不存在时返回错误。
// 设置后忽略 WithConfigPaths。
func WithConfigFile(path string) Option {
	return func(o *options) {
		o.configFile = path
	}
}

// WithConfigBytes 从内存加载配置，format 为 yaml/json/toml。
// 在配置文件之后加载。
func WithConfigBytes(data []byte, format string) Option {
	return func(o *options) {
		o.rawData = data
		o.rawFormat = format
	}
}

// WithEnvPrefix 启用环境变量，PREFIX_SERVER_URL → server.url
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
		o.envEnabled = true
	}
}

// WithEnvBinding 将环境变量 envName 直接绑定到 koanf key
func WithEnvBinding(envName, key string) Option {
	return func(o *options) {
		if o.envBindings == nil {
			o.envBindings = make(map[string]string)
		}
		o.envBindings[envName] = key
	}
}

// WithCommand 应用用户明确设置的 CLI flags
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// Load 加载配置，按优先级合并 (从低到高)：
//  1. 默认值
//  2. 配置文件
//  3. 内存配置 (WithConfigBytes)
//  4. 环境变量 (前缀，以及由前缀自动生成的绑定)
//  5. 环境变量 (显式绑定)
//  6. CLI flags
//
// 泛型参数 T 为配置结构体类型，必须使用 koanf tag 标记字段。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")

	// 1️⃣ 默认值
	if err := k.Load(structs.Provider(defaultConfig, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	// 2️⃣ 配置文件
	if err := loadConfigFile(k, &o); err != nil {
		return nil, err
	}

	// 3️⃣ 内存配置
	if o.rawData != nil {
		parser, err := parserForFormat(o.rawFormat)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(o.rawData), parser); err != nil {
			return nil, fmt.Errorf("failed to load %s config bytes: %w", o.rawFormat, err)
		}
	}

	// 4️⃣ 环境变量 (前缀)
	if o.envEnabled {
		// 自动绑定只针对已知 key，需在加载前缀变量之前生成
		auto := autoEnvBindings(o.envPrefix, k.Keys())
		if err := k.Load(env.Provider(o.envPrefix, ".", envKeyDecoder(o.envPrefix)), nil); err != nil {
			return nil, fmt.Errorf("failed to load env: %w", err)
		}
		if err := loadEnvBindings(k, auto); err != nil {
			return nil, err
		}
	}

	// 5️⃣ 环境变量 (绑定)
	if err := loadEnvBindings(k, o.envBindings); err != nil {
		return nil, err
	}

	// 6️⃣ CLI flags
	if o.cmd != nil {
		applyCLIFlags(o.cmd, k, reflect.TypeOf(defaultConfig), "")
	}

	var cfg T
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// loadConfigFile 加载 WithConfigFile 指定的文件，或 WithConfigPaths 中第一个存在的文件。
// 文件存在但无法解析时返回错误。
func loadConfigFile(k *koanf.Koanf, o *options) error {
	if o.configFile != "" {
		return loadFile(k, o.configFile)
	}

	for _, path := range o.configPaths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return err
		}
		slog.Debug("Loaded config from file", "path", path)
		return nil
	}

	slog.Debug("No config file found, using defaults")
	return nil
}

func loadFile(k *koanf.Koanf, path string) error {
	parser, err := parserForPath(path)
	if err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	return nil
}

// parserForPath 按扩展名选择解析器，无扩展名时按 YAML 解析
func parserForPath(path string) (koanf.Parser, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		ext = "yaml"
	}

	return parserForFormat(ext)
}

func parserForFormat(format string) (koanf.Parser, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Parser(), nil
	case "json":
		return json.Parser(), nil
	case "toml":
		return toml.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// envKeyDecoder 返回环境变量名到 koanf key 的转换函数：
// 去掉前缀，转小写，下划线转为点号。
func envKeyDecoder(prefix string) func(string) string {
	return func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "_", ".")
	}
}

// autoEnvBindings 为已知 koanf key 生成 "前缀 + 大写 key" 的环境变量绑定，
// 点号和连字符都转为下划线。用于 key 本身含 "_" 或 "-" 的情况。
func autoEnvBindings(prefix string, keys []string) map[string]string {
	bindings := make(map[string]string, len(keys))
	replacer := strings.NewReplacer(".", "_", "-", "_")
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

// loadEnvBindings 加载 环境变量名 → koanf key 绑定中已设置的变量
func loadEnvBindings(k *koanf.Koanf, bindings map[string]string) error {
	values := make(map[string]any)
	for envName, key := range bindings {
		if v, ok := os.LookupEnv(envName); ok {
			values[key] = v
		}
	}
	if len(values) == 0 {
		return nil
	}

	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return fmt.Errorf("failed to load env bindings: %w", err)
	}

	return nil
}

// applyCLIFlags 通过反射将用户明确指定的 CLI flags 应用到 koanf 实例
// koanf 标签使用 snake_case，CLI flag 使用 kebab-case
//
// 支持嵌套结构体，例如：
//   - log.level → --log-level
//   - tls.skip_verify → --tls-skip-verify
func applyCLIFlags(cmd *cli.Command, k *koanf.Koanf, typ reflect.Type, prefix string) {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)

		koanfKey := field.Tag.Get("koanf")
		if koanfKey == "" {
			continue
		}

		fullKey := koanfKey
		if prefix != "" {
			fullKey = prefix + "." + koanfKey
		}

		if field.Type.Kind() == reflect.Struct && field.Type != reflect.TypeFor[time.Time]() {
			applyCLIFlags(cmd, k, field.Type, fullKey)
			continue
		}

		flag := strings.NewReplacer(".", "-", "_", "-").Replace(fullKey)
		if !cmd.IsSet(flag) {
			continue
		}

		_ = k.Set(fullKey, cmd.Value(flag))
	}
}
