package storage

import (
	"context"
	"errors"
)

// ErrNotFound 表示键不存在。
var ErrNotFound = errors.New("storage: key not found")

// Backend 是内容文档的持久化后端：按键读写一段原始字节。
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Noop 表示当前环境没有可用的持久化存储。
// 持久化适配器在构造时识别它：读取总是返回默认文档，写入被忽略。
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrNotFound }
func (Noop) Set(context.Context, string, []byte) error    { return nil }

// IsNoop 判断后端是否代表“存储不可用”。
func IsNoop(b Backend) bool {
	if b == nil {
		return true
	}
	switch b.(type) {
	case Noop, *Noop:
		return true
	}
	return false
}
