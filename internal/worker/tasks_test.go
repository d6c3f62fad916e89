package worker

import (
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

// Фиксированная пауза распространяется только на задачи закрытия,
// остальные типы ретраятся с экспоненциальным backoff.
func TestRetryDelay(t *testing.T) {
	rq := require.New(t)

	boom := errors.New("boom")

	closeTask := asynq.NewTask(TypeCloseProduct, nil)
	for _, n := range []int{0, 1, 500, CloseMaxRetry} {
		rq.Equal(CloseRetryDelay, RetryDelay(n, boom, closeTask))
	}

	for _, taskType := range []string{TypeFinalizeDeal, TypeActivateBill, TypeSendEmail} {
		delay := RetryDelay(3, boom, asynq.NewTask(taskType, nil))
		rq.Greater(delay, CloseRetryDelay, taskType)
	}
}
