package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var tasksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "auction",
	Subsystem: "worker",
	Name:      "tasks_processed_total",
	Help:      "Background tasks by type and outcome.",
}, []string{"type", "status"})

const (
	statusOK      = "ok"
	statusRetry   = "retry"
	statusSkipped = "skipped"
)

func observeTask(taskType, status string) {
	tasksProcessed.WithLabelValues(taskType, status).Inc()
}
