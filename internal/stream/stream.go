// Package stream 解析"可选路径或默认流"。
//
// 值来源和输出目标共用同一策略：给出路径时打开文件，否则使用默认流。
// 默认流被包装为关闭无操作，调用方可以统一 defer Close。
package stream

import (
	"io"
	"os"
)

const (
	// StdinName 默认输入流在错误信息中的名称
	StdinName = "stdin"
	// StdoutName 默认输出流在错误信息中的名称
	StdoutName = "stdout"
)

// resolve path 非空时调用 open，否则返回默认流 def。
// 第二个返回值为来源/目标名称：路径本身或 defName。
func resolve[T any](path string, def T, defName string, open func(string) (T, error)) (T, string, error) {
	if path == "" {
		return def, defName, nil
	}

	f, err := open(path)
	if err != nil {
		var zero T
		return zero, path, err
	}

	return f, path, nil
}

// OpenSource 打开值来源：path 为空时读取 def（通常为 os.Stdin）。
func OpenSource(path string, def io.Reader) (io.ReadCloser, string, error) {
	return resolve[io.ReadCloser](path, io.NopCloser(def), StdinName, func(p string) (io.ReadCloser, error) {
		return os.Open(p)
	})
}

// OpenSink 打开输出目标：path 为空时写入 def（通常为 os.Stdout）。
// 文件按 0644 创建，已存在时截断。
func OpenSink(path string, def io.Writer) (io.WriteCloser, string, error) {
	return resolve[io.WriteCloser](path, nopWriteCloser{def}, StdoutName, func(p string) (io.WriteCloser, error) {
		return os.Create(p)
	})
}

// ReadAll 读取来源的全部内容并关闭。
func ReadAll(path string, def io.Reader) (string, string, error) {
	r, name, err := OpenSource(path, def)
	if err != nil {
		return "", name, err
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", name, err
	}

	return string(data), name, nil
}

// WriteAll 将 text 原样写入目标并关闭，关闭失败同样返回错误。
func WriteAll(path string, def io.Writer, text string) (string, error) {
	w, name, err := OpenSink(path, def)
	if err != nil {
		return name, err
	}

	if _, err := io.WriteString(w, text); err != nil {
		_ = w.Close()
		return name, err
	}

	return name, w.Close()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
