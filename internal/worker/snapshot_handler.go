package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"gorm.io/datatypes"

	"portfolioCMS/internal/cms"
	"portfolioCMS/internal/database"
	"portfolioCMS/internal/tasks"
)

type snapshotWriter interface {
	Create(ctx context.Context, snapshot *database.Snapshot) error
}

// SnapshotTaskHandler 将当前内容文档保存为一条历史快照。
type SnapshotTaskHandler struct {
	adapter   *cms.Adapter
	snapshots snapshotWriter
	logger    *slog.Logger
}

func NewSnapshotTaskHandler(adapter *cms.Adapter, snapshots snapshotWriter, logger *slog.Logger) *SnapshotTaskHandler {
	return &SnapshotTaskHandler{adapter: adapter, snapshots: snapshots, logger: logger}
}

// ProcessTask 实现 asynq.Handler。
func (h *SnapshotTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.SnapshotPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("unmarshal task payload failed", slog.Any("error", err))
		return fmt.Errorf("unmarshal snapshot payload: %v: %w", err, asynq.SkipRetry)
	}

	log := h.logger.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("storage_key", h.adapter.Key()),
	)
	if payload.StorageKey != "" && payload.StorageKey != h.adapter.Key() {
		log.Warn("snapshot requested for a different storage key, using the worker's key",
			slog.String("requested_key", payload.StorageKey),
		)
	}
	if !h.adapter.Available() {
		log.Warn("storage unavailable, skipping snapshot")
		return nil
	}

	doc := h.adapter.Load(ctx)
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	snapshot := &database.Snapshot{
		StorageKey:    h.adapter.Key(),
		Document:      datatypes.JSON(data),
		CorrelationID: payload.CorrelationID,
		Reason:        payload.Reason,
	}
	if err := h.snapshots.Create(ctx, snapshot); err != nil {
		log.Error("save snapshot failed", slog.Any("error", err))
		return err
	}

	log.Info("snapshot saved", slog.Uint64("snapshot_id", uint64(snapshot.ID)))
	return nil
}
