// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - --config 指定，或按 DefaultPaths 搜索
//  3. 环境变量 - 前缀 RENDER_LIQUID_
//  4. CLI flags
package config

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-render-liquid/pkg/config"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "RENDER_LIQUID_"

// Config 应用配置
type Config struct {
	Engine string    `koanf:"engine" desc:"模板引擎: auto, liquid, handlebars, django, gotemplate"`
	Log    LogConfig `koanf:"log" desc:"日志配置"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `koanf:"level" desc:"日志级别: trace, debug, info, warn, error"`
	Format string `koanf:"format" desc:"日志格式: console, json"`
}

// DefaultConfig 返回默认配置
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Engine: "liquid",
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load 加载应用配置。configFile 非空时必须存在，否则按默认路径搜索。
func Load(cmd *cli.Command, appName, configFile string, opts ...config.Option) (*Config, error) {
	base := []config.Option{
		config.WithEnvPrefix(EnvPrefix),
		config.WithCommand(cmd),
	}
	if configFile != "" {
		base = append(base, config.WithConfigFile(configFile))
	} else {
		base = append(base, config.WithConfigPaths(config.DefaultPaths(appName)...))
	}

	return config.Load(DefaultConfig(), append(base, opts...)...)
}
