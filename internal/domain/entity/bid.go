package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type BidStatus string

const (
	BidStatusActive  BidStatus = "active"
	BidStatusDeleted BidStatus = "deleted"
)

// Bid — ставка на товар. Неизменяема после создания; правило приёма
// (строго выше всех существующих ставок) применяется на вставке в
// репозитории под блокировкой строки товара.
type Bid struct {
	ID        int64           `json:"id" db:"id"`
	ClientID  int64           `json:"client_id" db:"client_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Status    BidStatus       `json:"status" db:"status"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
