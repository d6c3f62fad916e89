package paysystem

import (
	"context"

	"auction_market/internal/domain/entity"
)

// Status — извлечённый из ответа шлюза статус платежа. Единственное,
// что ядро понимает в гейтвей-специфичных форматах.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result — результат обращения к платёжной системе. RawPayload
// сохраняется в платёж как есть, ядро его не разбирает.
type Result struct {
	Status     Status
	ConfirmURL string // URL подтверждения, есть не у всех систем
	Invoice    string // инвойс в base64, есть не у всех систем
	RawPayload []byte
}

// Gateway — стратегия внешней платёжной системы.
type Gateway interface {
	Kind() entity.PaymentSystemKind

	// ProcessPayment отдаёт платёж в платёжную систему.
	ProcessPayment(ctx context.Context, payment *entity.Payment) (*Result, error)

	// ProcessExternalCallback обрабатывает внешний запрос от платёжной
	// системы, как правило подтверждение оплаты.
	ProcessExternalCallback(ctx context.Context, payment *entity.Payment, payload []byte) (*Result, error)
}
