package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypePortfolioSnapshot = "portfolio:snapshot"
	TypePortfolioPDF      = "portfolio:pdf"
)

// NotifyChannel 是 worker 发布任务结果的 Redis Pub/Sub 频道，由 API 的管理端 WebSocket 转发。
const NotifyChannel = "portfolio_notify"

// SnapshotPayload 请求为当前内容文档保存一个历史版本。
type SnapshotPayload struct {
	StorageKey    string `json:"storage_key"`
	Reason        string `json:"reason"`
	CorrelationID string `json:"correlation_id"`
}

// PDFExportPayload 请求将作品集页面导出为 PDF。
type PDFExportPayload struct {
	CorrelationID string `json:"correlation_id"`
	RequestedBy   string `json:"requested_by"`
}

// NewSnapshotTask 构造一个文档快照任务。
func NewSnapshotTask(storageKey, reason, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SnapshotPayload{
		StorageKey:    storageKey,
		Reason:        reason,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot payload: %w", err)
	}
	return asynq.NewTask(TypePortfolioSnapshot, payload), nil
}

// NewPDFExportTask 构造一个作品集 PDF 导出任务。
func NewPDFExportTask(requestedBy, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(PDFExportPayload{
		CorrelationID: correlationID,
		RequestedBy:   requestedBy,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal pdf export payload: %w", err)
	}
	return asynq.NewTask(TypePortfolioPDF, payload, asynq.MaxRetry(3)), nil
}
