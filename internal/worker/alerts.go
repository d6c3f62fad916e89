package worker

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
)

// OpsNotifier — канал алертов для команды.
type OpsNotifier interface {
	AlertTaskFailed(ctx context.Context, taskType string, payload []byte, taskErr error)
}

// NewAlertingErrorHandler шлёт алерт, когда задача исчерпала ретраи или
// провалилась окончательно. Промежуточные ретраи — штатная работа
// очереди, о них не шумим.
func NewAlertingErrorHandler(ops OpsNotifier) asynq.ErrorHandler {
	return asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)

		alertIfExhausted(ctx, ops, task, err, retried, maxRetry)
	})
}

func alertIfExhausted(ctx context.Context, ops OpsNotifier, task *asynq.Task, err error, retried, maxRetry int) {
	if retried < maxRetry && !errors.Is(err, asynq.SkipRetry) {
		return
	}

	ops.AlertTaskFailed(ctx, task.Type(), task.Payload(), err)
}
