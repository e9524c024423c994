// Author: lwmacct (https://github.com/lwmacct)
package config_test

import (
	"fmt"

	"github.com/lwmacct/251207-go-render-liquid/pkg/config"
)

// ExampleDefaultPaths 演示如何获取默认配置文件搜索路径
func ExampleDefaultPaths() {
	// 不指定应用名称时，返回基础路径
	paths := config.DefaultPaths()
	fmt.Println("基础路径数量:", len(paths))

	// 指定应用名称时，包含 XDG 用户配置目录和系统配置目录
	paths = config.DefaultPaths("myapp")
	fmt.Println("带应用名路径数量:", len(paths))

	// Output:
	// 基础路径数量: 2
	// 带应用名路径数量: 4
}

// ExampleExampleYAML 演示如何根据配置结构体生成 YAML 示例
func ExampleExampleYAML() {
	type LogConfig struct {
		Level  string `koanf:"level"  desc:"日志级别"`
		Format string `koanf:"format" desc:"日志格式"`
	}
	type AppConfig struct {
		Engine string    `koanf:"engine" desc:"模板引擎"`
		Log    LogConfig `koanf:"log"    desc:"日志配置"`
	}

	yaml := config.ExampleYAML(AppConfig{
		Engine: "liquid",
		Log:    LogConfig{Level: "warn", Format: "console"},
	})
	fmt.Print(string(yaml))
	// # 配置示例文件, 复制此文件为 config.yaml 并根据需要修改
	// engine: "liquid" # 模板引擎
	//
	// # 日志配置
	// log:
	//   level: "warn" # 日志级别
	//   format: "console" # 日志格式
}

// ExampleLoad 演示如何加载配置
//
// Load 函数按以下优先级合并配置:
//  1. 默认值 (最低优先级)
//  2. 配置文件
//  3. 环境变量
//  4. CLI flags (最高优先级)
func ExampleLoad() {
	type Config struct {
		Name  string `koanf:"name"`
		Debug bool   `koanf:"debug"`
	}

	// 配置文件不存在时，使用默认值
	cfg, err := config.Load(Config{Name: "default-app"},
		config.WithConfigPaths("nonexistent.yaml"),
	)
	if err != nil {
		fmt.Println("加载失败:", err)
		return
	}

	fmt.Println("Name:", cfg.Name)
	fmt.Println("Debug:", cfg.Debug)

	// Output:
	// Name: default-app
	// Debug: false
}

// ExampleLoad_withConfigBytes 演示如何从内存加载 TOML 配置
func ExampleLoad_withConfigBytes() {
	type Config struct {
		Engine string `koanf:"engine"`
	}

	cfg, err := config.Load(Config{Engine: "liquid"},
		config.WithConfigBytes([]byte(`engine = "handlebars"`), "toml"),
	)
	if err != nil {
		fmt.Println("加载失败:", err)
		return
	}

	fmt.Println("Engine:", cfg.Engine)

	// Output:
	// Engine: handlebars
}
