package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"portfolioCMS/internal/api/middleware"
	"portfolioCMS/internal/tasks"
)

type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// JobsHandler 将耗时工作（PDF 导出、内容快照）交给 worker。
type JobsHandler struct {
	queue      taskEnqueuer
	storageKey string
}

// NewJobsHandler 构造处理器；queue 为 nil 表示没有配置 Redis，相关接口返回 503。
func NewJobsHandler(queue taskEnqueuer, storageKey string) *JobsHandler {
	return &JobsHandler{queue: queue, storageKey: storageKey}
}

type snapshotRequest struct {
	Reason string `json:"reason" binding:"max=64"`
}

// ExportPDF 入队一个作品集 PDF 导出任务。
func (h *JobsHandler) ExportPDF(c *gin.Context) {
	if h.queue == nil {
		Unavailable(c, "task queue is not configured")
		return
	}
	username, _ := middleware.AdminUsername(c)
	correlationID := middleware.GetCorrelationID(c)

	task, err := tasks.NewPDFExportTask(username, correlationID)
	if err != nil {
		Internal(c, "failed to build task")
		return
	}
	h.enqueue(c, task, correlationID)
}

// CreateSnapshot 入队一个内容快照任务。
func (h *JobsHandler) CreateSnapshot(c *gin.Context) {
	if h.queue == nil {
		Unavailable(c, "task queue is not configured")
		return
	}
	var req snapshotRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, err.Error())
			return
		}
	}
	if req.Reason == "" {
		req.Reason = "manual"
	}
	correlationID := middleware.GetCorrelationID(c)

	task, err := tasks.NewSnapshotTask(h.storageKey, sanitizeText(req.Reason), correlationID)
	if err != nil {
		Internal(c, "failed to build task")
		return
	}
	h.enqueue(c, task, correlationID)
}

func (h *JobsHandler) enqueue(c *gin.Context, task *asynq.Task, correlationID string) {
	logger := middleware.LoggerFromContext(c)
	info, err := h.queue.EnqueueContext(c.Request.Context(), task)
	if err != nil {
		logger.Error("enqueue task failed", slog.String("task_type", task.Type()), slog.Any("error", err))
		Internal(c, "failed to enqueue task")
		return
	}
	logger.Info("task enqueued", slog.String("task_type", task.Type()), slog.String("task_id", info.ID))
	c.JSON(http.StatusAccepted, gin.H{
		"task_id":        info.ID,
		"task_type":      task.Type(),
		"correlation_id": correlationID,
	})
}
