package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"portfolioCMS/internal/errcode"
	"portfolioCMS/internal/storage"
	"portfolioCMS/internal/tasks"
)

const exportURLTTL = 24 * time.Hour

type exportStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (*storage.UploadInfo, error)
	GeneratePresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error)
}

type notifyPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// PageRenderer 打开页面并返回 PDF 字节。
type PageRenderer func(ctx context.Context, logger *slog.Logger, targetURL string) ([]byte, error)

// PDFTaskHandler 负责消费作品集 PDF 导出任务。
type PDFTaskHandler struct {
	storage         exportStorage
	redisClient     notifyPublisher
	logger          *slog.Logger
	frontendBaseURL string
	render          PageRenderer
}

// NewPDFTaskHandler 创建任务处理器，render 为 nil 时使用无头浏览器渲染。
func NewPDFTaskHandler(
	storage exportStorage,
	redisClient notifyPublisher,
	logger *slog.Logger,
	frontendBaseURL string,
	render PageRenderer,
) *PDFTaskHandler {
	if render == nil {
		render = RenderPrintPage
	}
	return &PDFTaskHandler{
		storage:         storage,
		redisClient:     redisClient,
		logger:          logger,
		frontendBaseURL: strings.TrimRight(strings.TrimSpace(frontendBaseURL), "/"),
		render:          render,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *PDFTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return fmt.Errorf("unmarshal pdf export payload: %v: %w", err, asynq.SkipRetry)
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("requested_by", payload.RequestedBy),
	)
	log.Info("starting portfolio pdf export")

	failCode := errcode.SystemError
	defer func() {
		if retErr == nil || !isFinalAsynqAttempt(ctx) {
			return
		}
		notify := ExportNotifyMessage{
			Status:        "error",
			CorrelationID: payload.CorrelationID,
			ErrorCode:     failCode,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publish(ctx, notify); err != nil {
			log.Error("publish pdf error notification failed", slog.Any("error", err))
		}
	}()

	if h.frontendBaseURL == "" {
		notify := ExportNotifyMessage{
			Status:        "error",
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.ResourceMissing,
			ErrorMessage:  "frontend base url is not configured",
		}
		if err := h.publish(ctx, notify); err != nil {
			log.Error("publish pdf error notification failed", slog.Any("error", err))
		}
		return nil
	}

	targetURL := h.frontendBaseURL + "/print"
	pdfBytes, err := h.render(ctx, log, targetURL)
	if err != nil {
		log.Error("render portfolio page failed", slog.Any("error", err))
		failCode = errcode.RenderFailed
		return err
	}

	objectName := fmt.Sprintf("exports/portfolio/%s.pdf", uuid.NewString())
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		failCode = errcode.UploadFailed
		return err
	}

	url, err := h.storage.GeneratePresignedURL(ctx, objectName, exportURLTTL)
	if err != nil {
		log.Warn("presign exported pdf failed", slog.Any("error", err))
	}

	notify := ExportNotifyMessage{
		Status:        "completed",
		CorrelationID: payload.CorrelationID,
		ObjectKey:     objectName,
		URL:           url,
		ErrorCode:     errcode.OK,
	}
	if err := h.publish(ctx, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("portfolio pdf export completed", slog.String("object_key", objectName))
	return nil
}

func (h *PDFTaskHandler) publish(ctx context.Context, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	if err := h.redisClient.Publish(ctx, tasks.NotifyChannel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", tasks.NotifyChannel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
