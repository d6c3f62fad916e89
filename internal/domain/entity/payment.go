package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"auction_market/internal/domain"
	"auction_market/pkg/errcodes"
)

type PaymentStatus string

const (
	PaymentStatusNotPayed  PaymentStatus = "not_payed"
	PaymentStatusPayed     PaymentStatus = "payed"
	PaymentStatusPartPayed PaymentStatus = "partpayed"
	PaymentStatusPending   PaymentStatus = "pending" // Ждём подтверждения оплаты
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// PaymentSystemKind — идентификатор внешней платёжной системы.
type PaymentSystemKind string

const (
	PaymentSystemDummy PaymentSystemKind = "dummy" // Псевдо платёжная система
)

// Payment — платёжный счёт, например пополнение баланса через внешнюю
// платёжную систему.
type Payment struct {
	ID             int64             `json:"id" db:"id"`
	ClientID       int64             `json:"client_id" db:"client_id"`
	OrderID        uuid.UUID         `json:"order_id" db:"order_id"`
	Status         PaymentStatus     `json:"status" db:"status"`
	System         PaymentSystemKind `json:"payment_system" db:"payment_system"`
	ExpectedAmount decimal.Decimal   `json:"expected_amount" db:"expected_amount"`
	Amount         decimal.Decimal   `json:"amount" db:"amount"`
	PayedDate      *time.Time        `json:"payed_date,omitempty" db:"payed_date"`
	ReqDate        *time.Time        `json:"req_date,omitempty" db:"req_date"`
	Data           []byte            `json:"-" db:"data"` // Сырой ответ платёжной системы
	BillID         *int64            `json:"bill_id,omitempty" db:"bill_id"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
}

// SetPayed помечает платёж оплаченным. Разрешено только из not_payed и
// pending, остальные статусы — ошибка перехода.
func (p *Payment) SetPayed(amount decimal.Decimal, now time.Time) error {
	switch p.Status {
	case PaymentStatusNotPayed, PaymentStatusPending:
	default:
		return domain.NewError(errcodes.WrongStatus, "payment can not be payed from status "+string(p.Status))
	}

	p.Status = PaymentStatusPayed
	p.Amount = amount
	p.PayedDate = &now

	return nil
}

// SetPending — платёж отдан в платёжную систему, ждём пользователя.
func (p *Payment) SetPending(now time.Time) error {
	if p.Status != PaymentStatusNotPayed {
		return domain.NewError(errcodes.WrongStatus, "payment can not be pending from status "+string(p.Status))
	}

	p.Status = PaymentStatusPending
	p.ReqDate = &now

	return nil
}

// SetFailed — платёжная система ответила ошибкой.
func (p *Payment) SetFailed() error {
	switch p.Status {
	case PaymentStatusNotPayed, PaymentStatusPending:
	default:
		return domain.NewError(errcodes.WrongStatus, "payment can not be failed from status "+string(p.Status))
	}

	p.Status = PaymentStatusFailed

	return nil
}

// SetCancelled отменяет незавершённый платёж.
func (p *Payment) SetCancelled() error {
	if p.Status == PaymentStatusPayed {
		return domain.NewError(errcodes.WrongStatus, "payed payment can not be cancelled")
	}

	p.Status = PaymentStatusCancelled

	return nil
}
