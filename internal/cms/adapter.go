package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"portfolioCMS/internal/content"
	"portfolioCMS/internal/storage"
)

// ErrStorageUnavailable 表示没有可写入的持久化存储。
var ErrStorageUnavailable = errors.New("content storage unavailable")

// Adapter 负责整个内容文档的序列化与读写。
// 存储失败只记录日志，不向调用方返回错误：持久化是尽力而为的。
type Adapter struct {
	backend storage.Backend
	key     string
	logger  *slog.Logger
}

// NewAdapter 构造持久化适配器。backend 为 nil 或 storage.Noop 时视为存储不可用，
// 之后 Load 总是返回默认文档，Save 不做任何事。
func NewAdapter(backend storage.Backend, key string, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	if key == "" {
		key = content.StorageKey
	}
	if storage.IsNoop(backend) {
		backend = nil
	}
	return &Adapter{
		backend: backend,
		key:     key,
		logger:  logger.With(slog.String("storage_key", key)),
	}
}

// Available 表示是否存在可用的持久化存储。
func (a *Adapter) Available() bool {
	return a.backend != nil
}

// Key 返回文档使用的存储键。
func (a *Adapter) Key() string {
	return a.key
}

// Load 返回完整的内容文档。
//   - 没有已保存的文档：返回默认文档并立即写入；
//   - 已保存的数据无法解析：记录日志并返回默认文档，不覆盖原数据；
//   - 存储不可用或读取失败：返回默认文档。
func (a *Adapter) Load(ctx context.Context) content.Document {
	if a.backend == nil {
		return content.Default()
	}

	raw, err := a.backend.Get(ctx, a.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		doc := content.Default()
		a.Save(ctx, doc)
		return doc
	case err != nil:
		a.logger.Error("load portfolio data failed", slog.Any("error", err))
		return content.Default()
	}

	var doc content.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		a.logger.Error("decode portfolio data failed, serving defaults",
			slog.Any("error", err),
			slog.Int("bytes", len(raw)),
		)
		return content.Default()
	}
	doc.Normalize()
	return doc
}

// Save 序列化并整体覆盖已保存的文档，失败只记录日志。
func (a *Adapter) Save(ctx context.Context, doc content.Document) {
	if a.backend == nil {
		return
	}
	if err := a.Write(ctx, doc); err != nil {
		a.logger.Error("save portfolio data failed", slog.Any("error", err))
	}
}

// Write 与 Save 相同，但把失败返回给调用方，供一次性的维护命令使用。
func (a *Adapter) Write(ctx context.Context, doc content.Document) error {
	if a.backend == nil {
		return ErrStorageUnavailable
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode portfolio data: %w", err)
	}
	if err := a.backend.Set(ctx, a.key, data); err != nil {
		return fmt.Errorf("write portfolio data: %w", err)
	}
	return nil
}

// Raw 返回存储中的原始字节，用于诊断与导出。
func (a *Adapter) Raw(ctx context.Context) ([]byte, error) {
	if a.backend == nil {
		return nil, storage.ErrNotFound
	}
	return a.backend.Get(ctx, a.key)
}
