package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit      TransactionType = "deposit"      // Зачисление на аккаунт (+)
	TransactionTypeExpense      TransactionType = "expense"      // Списание за услуги (-)
	TransactionTypeWithdraw     TransactionType = "withdraw"     // Вывод средств во вне (-)
	TransactionTypeCancellation TransactionType = "cancellation" // Возврат средств с отмены списания (+)
)

// Transaction — запись баланса. Только добавляется, никогда не
// изменяется и не удаляется; баланс клиента — сумма его транзакций.
// Транзакций без счёта не бывает, счёт может иметь несколько транзакций.
type Transaction struct {
	ID        int64           `json:"id" db:"id"`
	ClientID  int64           `json:"client_id" db:"client_id"`
	BillID    int64           `json:"bill_id" db:"bill_id"`
	Type      TransactionType `json:"tnx_type" db:"tnx_type"`
	Amount    decimal.Decimal `json:"amount" db:"amount"` // Со знаком
	Comment   string          `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
