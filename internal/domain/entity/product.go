package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"auction_market/internal/domain"
	"auction_market/pkg/errcodes"
)

type ProductStatus string

// Поток статусов:
//
//	inactive->active->sold->canceled
//	inactive->active->deleted || inactive->deleted
const (
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDeleted  ProductStatus = "deleted"
	ProductStatusSold     ProductStatus = "sold" // Завершённый аукцион
	ProductStatusCanceled ProductStatus = "canceled"
)

// Product — товар на аукционе.
type Product struct {
	ID          int64            `json:"id" db:"id"`
	SellerID    int64            `json:"seller_id" db:"seller_id"`
	Name        string           `json:"name" db:"name"`
	Description string           `json:"description" db:"description"`
	StartPrice  decimal.Decimal  `json:"start_price" db:"start_price"`
	BuyPrice    *decimal.Decimal `json:"buy_price,omitempty" db:"buy_price"`
	StartDate   *time.Time       `json:"start_date" db:"start_date"`
	EndDate     *time.Time       `json:"end_date" db:"end_date"`
	Status      ProductStatus    `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// Validate проверяет инварианты товара перед каждым сохранением.
func (p *Product) Validate() error {
	if p.Name == "" {
		return domain.NewError(errcodes.ValidationError, "name is required")
	}

	if !p.StartPrice.IsPositive() {
		return domain.NewError(errcodes.ValidationError, "start_price should be positive")
	}

	if p.BuyPrice != nil && p.BuyPrice.LessThanOrEqual(p.StartPrice) {
		return domain.NewError(errcodes.ValidationError, "buy_price should exceed start_price")
	}

	switch p.Status {
	case ProductStatusActive, ProductStatusSold, ProductStatusCanceled:
		if p.StartDate == nil || p.EndDate == nil {
			return domain.NewError(errcodes.ValidationError, "start_date and end_date should be defined")
		}

		if !p.EndDate.After(*p.StartDate) {
			return domain.NewError(errcodes.ValidationError, "end_date should be after start_date")
		}
	case ProductStatusInactive, ProductStatusDeleted:
	}

	return nil
}

// Activate переводит товар в статус active. Повторная активация — ошибка.
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return domain.NewError(errcodes.AlreadyActivated, "product is already activated")
	}

	p.Status = ProductStatusActive

	return p.Validate()
}

// MarkDeleted помечает товар удалённым. Удалять проданное или уже
// удалённое нельзя.
func (p *Product) MarkDeleted() error {
	switch p.Status {
	case ProductStatusDeleted:
		return domain.NewError(errcodes.AlreadyDeleted, "product is already deleted")
	case ProductStatusSold:
		return domain.NewError(errcodes.AlreadySolded, "product is already solded")
	case ProductStatusInactive, ProductStatusActive, ProductStatusCanceled:
	}

	p.Status = ProductStatusDeleted

	return nil
}

// IsBuyConditionMet — условие закрытия по цене: ставка дотянулась до
// покупной цены. Если покупная цена не задана, условие недостижимо.
func (p *Product) IsBuyConditionMet(finalPrice decimal.Decimal) bool {
	if p.BuyPrice == nil {
		return false
	}

	return finalPrice.GreaterThanOrEqual(*p.BuyPrice)
}

// IsTimeConditionMet — условие закрытия по времени: аукцион истёк.
// Отсутствие end_date у активного товара — нарушение инварианта.
func (p *Product) IsTimeConditionMet(now time.Time) (bool, error) {
	if p.EndDate == nil {
		return false, domain.NewError(errcodes.ValidationError, "active product without end_date")
	}

	return !now.Before(*p.EndDate), nil
}
