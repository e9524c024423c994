// Package config 提供通用的配置加载功能，可被外部项目复用。
//
// # 特性
//
// 使用泛型支持任意配置结构体类型，配置加载优先级 (从低到高)：
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 WithConfigPaths 或 WithConfigFile 选项设置
//  3. 内存配置 - 通过 WithConfigBytes 选项设置
//  4. 环境变量(前缀) - 通过 WithEnvPrefix 选项启用
//  5. 环境变量(绑定) - 通过 WithEnvBinding 选项设置
//  6. CLI flags - 通过 WithCommand 选项设置，最高优先级
//
// # 快速开始
//
// 定义配置结构体，使用 koanf 和 desc 标签：
//
//	type Config struct {
//	    Engine string    `koanf:"engine" desc:"模板引擎"`
//	    Log    LogConfig `koanf:"log"    desc:"日志配置"`
//	}
//
// 加载配置（使用函数选项模式）：
//
//	cfg, err := config.Load(DefaultConfig(),
//	    config.WithConfigPaths(config.DefaultPaths("myapp")...),
//	    config.WithEnvPrefix("MYAPP_"),
//	    config.WithCommand(cmd),
//	)
//
// # 配置文件
//
// 按扩展名选择解析器：.yaml/.yml、.json、.toml，无扩展名按 YAML 解析。
// WithConfigPaths 使用第一个存在的文件；文件存在但无法解析时返回错误。
//
// # 环境变量(前缀)
//
// 通过 [WithEnvPrefix] 启用环境变量支持，命名规则：
//   - 前缀 + 大写的 koanf key
//   - 点号 (.) 和连字符 (-) 转为下划线 (_)
//
// 示例 (前缀为 "MYAPP_")：
//   - MYAPP_DEBUG → debug
//   - MYAPP_LOG_LEVEL → log.level
//   - MYAPP_CLIENT_SERVER_PASSWORD → client.server-password (已知 key 自动绑定)
//
// # CLI Flag 映射
//
// koanf key 中的点号和下划线都转为连字符：
//   - log.level → --log-level
//   - tls.skip_verify → --tls-skip-verify
//
// 只有用户在命令行上明确设置的 flag 才会覆盖其它来源。
//
// # 生成配置示例
//
// 使用 [ExampleYAML] 根据配置结构体生成带注释的 YAML，
// 使用 [Marshal] 输出不带注释的 yaml/json/toml。
package config
