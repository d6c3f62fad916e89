package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"auction_market/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Scheduler ставит задачи в очередь. Семантика только enqueue:
// выполнение наблюдают обработчики, не постановщик.
type Scheduler struct {
	client *asynq.Client
}

func NewScheduler(client *asynq.Client) *Scheduler {
	return &Scheduler{client: client}
}

// ScheduleCloseAt планирует попытку закрытия аукциона на момент
// дедлайна. Повтор планирования для того же товара допустим: закрытие
// идемпотентно, лишняя попытка упрётся в уже существующую сделку.
func (s *Scheduler) ScheduleCloseAt(ctx context.Context, productID int64, eta time.Time) error {
	payload, err := json.Marshal(closeProductPayload{ProductID: productID})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeCloseProduct, payload)

	info, err := s.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueAuction),
		asynq.ProcessAt(eta),
		asynq.MaxRetry(CloseMaxRetry),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeCloseProduct, err)
	}

	logger(ctx).Info("product close scheduled",
		"product_id", productID,
		"eta", eta,
		"task_id", info.ID,
	)

	return nil
}

// ScheduleFinalize ставит финализацию сделки в очередь.
func (s *Scheduler) ScheduleFinalize(ctx context.Context, dealID int64) error {
	payload, err := json.Marshal(finalizeDealPayload{DealID: dealID})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeFinalizeDeal, payload)

	if _, err := s.client.EnqueueContext(ctx, task, asynq.Queue(QueueAuction)); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeFinalizeDeal, err)
	}

	return nil
}

// ScheduleBillActivation ставит активацию счёта в очередь.
func (s *Scheduler) ScheduleBillActivation(ctx context.Context, billID int64) error {
	payload, err := json.Marshal(activateBillPayload{BillID: billID})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeActivateBill, payload)

	if _, err := s.client.EnqueueContext(ctx, task, asynq.Queue(QueueBilling)); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeActivateBill, err)
	}

	return nil
}

// ScheduleEmail ставит отправку письма в очередь.
func (s *Scheduler) ScheduleEmail(ctx context.Context, emailType string, productID int64) error {
	payload, err := json.Marshal(sendEmailPayload{EmailType: emailType, ProductID: productID})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeSendEmail, payload)

	if _, err := s.client.EnqueueContext(ctx, task, asynq.Queue(QueueNotify)); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeSendEmail, err)
	}

	return nil
}
