package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deal фиксирует завершённый аукцион: победившую ставку превращаем в
// сделку, на основе сделки формируем счета и движения по балансу.
// У товара может быть не более одной сделки.
type Deal struct {
	ID        int64           `json:"id" db:"id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	BuyerID   int64           `json:"buyer_id" db:"buyer_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Commission — комиссия площадки: сумма сделки умноженная на
// (комиссионный процент компании + НДС) / 100.
func (d *Deal) Commission(commissionPart, vat int) decimal.Decimal {
	rate := decimal.NewFromInt(int64(commissionPart + vat))

	return d.Amount.Mul(rate).Div(decimal.NewFromInt(100))
}

// Proceeds — выручка продавца, остаток после комиссии. Считается
// вычитанием, чтобы commission + proceeds сходились с суммой сделки
// без потерь на округлении.
func (d *Deal) Proceeds(commissionPart, vat int) decimal.Decimal {
	return d.Amount.Sub(d.Commission(commissionPart, vat))
}

// DealBill — связь между сделками и счетами.
type DealBill struct {
	ID        int64     `json:"id" db:"id"`
	DealID    int64     `json:"deal_id" db:"deal_id"`
	BillID    int64     `json:"bill_id" db:"bill_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
