package worker

import (
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Типы задач очереди.
const (
	TypeCloseProduct = "auction:close_product"
	TypeFinalizeDeal = "auction:finalize_deal"
	TypeActivateBill = "billing:activate_bill"
	TypeSendEmail    = "notify:send_email"
)

// Очереди по приоритету обработки.
const (
	QueueAuction = "auction"
	QueueBilling = "billing"
	QueueNotify  = "notify"
)

// Политика ретраев закрытия: «не готов» — не ошибка, а ожидание.
// Редкий фиксированный ретрай даёт закрытию догнать условие
// (ставка-выкуп могла прийти после дедлайна планировщика), лимит
// ограничивает ожидание ~100 минутами.
const (
	CloseMaxRetry   = 1200
	CloseRetryDelay = 5 * time.Second
)

// RetryDelay даёт фиксированную паузу только задачам закрытия: их
// ретрай — ожидание условия, а не сбой. Остальные типы остаются на
// экспоненциальном backoff по умолчанию.
func RetryDelay(n int, err error, task *asynq.Task) time.Duration {
	if task.Type() == TypeCloseProduct {
		return CloseRetryDelay
	}

	return asynq.DefaultRetryDelayFunc(n, err, task)
}

type closeProductPayload struct {
	ProductID int64 `json:"product_id"`
}

type finalizeDealPayload struct {
	DealID int64 `json:"deal_id"`
}

type activateBillPayload struct {
	BillID int64 `json:"bill_id"`
}

type sendEmailPayload struct {
	EmailType string `json:"email_type"`
	ProductID int64  `json:"product_id"`
}
