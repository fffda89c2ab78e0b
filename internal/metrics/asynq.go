package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 任务结果标签。skipped 表示载荷无效、不再重试。
const (
	TaskOutcomeOK      = "ok"
	TaskOutcomeFailed  = "failed"
	TaskOutcomeSkipped = "skipped"
)

var (
	tasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Subsystem: "worker",
			Name:      "tasks_total",
			Help:      "按类型与结果统计的后台任务数。",
		},
		[]string{"task_type", "outcome"},
	)

	taskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portfolio",
			Subsystem: "worker",
			Name:      "task_duration_seconds",
			Help:      "后台任务处理耗时（秒）；PDF 渲染通常在数秒量级。",
			Buckets:   []float64{0.05, 0.25, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"task_type"},
	)

	tasksInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "portfolio",
			Subsystem: "worker",
			Name:      "tasks_in_progress",
			Help:      "当前正在处理的任务数量。",
		},
		[]string{"task_type"},
	)
)

// TaskOutcome 将处理结果归类为指标标签。
func TaskOutcome(err error) string {
	switch {
	case err == nil:
		return TaskOutcomeOK
	case errors.Is(err, asynq.SkipRetry):
		return TaskOutcomeSkipped
	default:
		return TaskOutcomeFailed
	}
}

// AsynqMetricsMiddleware 记录任务数量、结果与耗时。
func AsynqMetricsMiddleware() asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
			taskType := task.Type()
			tasksInProgress.WithLabelValues(taskType).Inc()
			defer tasksInProgress.WithLabelValues(taskType).Dec()

			start := time.Now()
			err := next.ProcessTask(ctx, task)
			taskDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
			tasksTotal.WithLabelValues(taskType, TaskOutcome(err)).Inc()
			return err
		})
	}
}
