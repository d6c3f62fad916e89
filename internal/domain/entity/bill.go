package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type BillType string

// Типы счетов:
//
//	prepay - предоплата через платёжную систему (+)
//	sell - реализация товара, счёт покупателя (-)
//	commission - плата за услугу продажи (-)
//	proceeds - выручка с продажи товара (+)
const (
	BillTypePrepay     BillType = "prepay"
	BillTypeSell       BillType = "sell"
	BillTypeCommission BillType = "commission"
	BillTypeProceeds   BillType = "proceeds"
)

type BillStatus string

// status flow: not_activated->activated->cancelled
//
// Счёт всегда создаётся неактивированным. Активация создаёт движение
// по балансу. Отмена зарезервирована под логику рефанда.
const (
	BillStatusNotActivated BillStatus = "not_activated"
	BillStatusActivated    BillStatus = "activated"
	BillStatusCancelled    BillStatus = "cancelled"
)

// Bill — счёт. Несёт доп. информацию по движению баланса: зачем,
// почему, откуда. Сумма хранится положительной, знак применяется
// стратегией активации при создании транзакции.
type Bill struct {
	ID        int64           `json:"id" db:"id"`
	ClientID  int64           `json:"client_id" db:"client_id"`
	Type      BillType        `json:"bill_type" db:"bill_type"`
	Status    BillStatus      `json:"status" db:"status"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	VAT       int             `json:"vat" db:"vat"` // НДС, процент на момент создания
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

func (b *Bill) String() string {
	return fmt.Sprintf("#%d %s: %s(%d)(%s)", b.ID, b.Type, b.Amount.StringFixed(2), b.ClientID, b.Status)
}
