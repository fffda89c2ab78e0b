package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 内容仓库操作结果。
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
)

var storeOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "portfolio",
		Subsystem: "cms",
		Name:      "store_operations_total",
		Help:      "内容仓库写操作总数。",
	},
	[]string{"op", "outcome"},
)

// ObserveStoreOperation 记录一次内容仓库写操作。
func ObserveStoreOperation(op, outcome string) {
	storeOperationsTotal.WithLabelValues(op, outcome).Inc()
}
