// Package command 提供 render-liquid 的命令行功能。
package command

import "github.com/lwmacct/251207-go-render-liquid/internal/config"

// AppName 应用名称，用于配置文件搜索路径
const AppName = "render-liquid"

// Version 应用版本
const Version = "0.1.0"

// Defaults 默认配置 - 单一来源 (Single Source of Truth)
var Defaults = config.DefaultConfig()
