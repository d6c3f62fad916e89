package persistence

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"auction_market/internal/domain/entity"
)

// Внутренние структуры маппинга строк БД.

type productSchema struct {
	ID          int64               `db:"id"`
	SellerID    int64               `db:"seller_id"`
	Name        string              `db:"name"`
	Description string              `db:"description"`
	StartPrice  decimal.Decimal     `db:"start_price"`
	BuyPrice    decimal.NullDecimal `db:"buy_price"`
	StartDate   *time.Time          `db:"start_date"`
	EndDate     *time.Time          `db:"end_date"`
	Status      string              `db:"status"`
	CreatedAt   time.Time           `db:"created_at"`
	UpdatedAt   time.Time           `db:"updated_at"`
}

func (s *productSchema) toDomain() *entity.Product {
	product := &entity.Product{
		ID:          s.ID,
		SellerID:    s.SellerID,
		Name:        s.Name,
		Description: s.Description,
		StartPrice:  s.StartPrice,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		Status:      entity.ProductStatus(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if s.BuyPrice.Valid {
		price := s.BuyPrice.Decimal
		product.BuyPrice = &price
	}

	return product
}

func fromProduct(p *entity.Product) map[string]any {
	var buyPrice any
	if p.BuyPrice != nil {
		buyPrice = *p.BuyPrice
	}

	return map[string]any{
		"id":          p.ID,
		"seller_id":   p.SellerID,
		"name":        p.Name,
		"description": p.Description,
		"start_price": p.StartPrice,
		"buy_price":   buyPrice,
		"start_date":  p.StartDate,
		"end_date":    p.EndDate,
		"status":      string(p.Status),
	}
}

type bidSchema struct {
	ID        int64           `db:"id"`
	ClientID  int64           `db:"client_id"`
	ProductID int64           `db:"product_id"`
	Price     decimal.Decimal `db:"price"`
	Status    string          `db:"status"`
	CreatedAt time.Time       `db:"created_at"`
}

func (s *bidSchema) toDomain() *entity.Bid {
	return &entity.Bid{
		ID:        s.ID,
		ClientID:  s.ClientID,
		ProductID: s.ProductID,
		Price:     s.Price,
		Status:    entity.BidStatus(s.Status),
		CreatedAt: s.CreatedAt,
	}
}

type dealSchema struct {
	ID        int64           `db:"id"`
	ProductID int64           `db:"product_id"`
	BuyerID   int64           `db:"buyer_id"`
	Amount    decimal.Decimal `db:"amount"`
	CreatedAt time.Time       `db:"created_at"`
}

func (s *dealSchema) toDomain() *entity.Deal {
	return &entity.Deal{
		ID:        s.ID,
		ProductID: s.ProductID,
		BuyerID:   s.BuyerID,
		Amount:    s.Amount,
		CreatedAt: s.CreatedAt,
	}
}

type billSchema struct {
	ID        int64           `db:"id"`
	ClientID  int64           `db:"client_id"`
	BillType  string          `db:"bill_type"`
	Status    string          `db:"status"`
	Amount    decimal.Decimal `db:"amount"`
	VAT       int             `db:"vat"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (s *billSchema) toDomain() *entity.Bill {
	return &entity.Bill{
		ID:        s.ID,
		ClientID:  s.ClientID,
		Type:      entity.BillType(s.BillType),
		Status:    entity.BillStatus(s.Status),
		Amount:    s.Amount,
		VAT:       s.VAT,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type transactionSchema struct {
	ID        int64           `db:"id"`
	ClientID  int64           `db:"client_id"`
	BillID    int64           `db:"bill_id"`
	TnxType   string          `db:"tnx_type"`
	Amount    decimal.Decimal `db:"amount"`
	Comment   string          `db:"comment"`
	CreatedAt time.Time       `db:"created_at"`
}

func (s *transactionSchema) toDomain() entity.Transaction {
	return entity.Transaction{
		ID:        s.ID,
		ClientID:  s.ClientID,
		BillID:    s.BillID,
		Type:      entity.TransactionType(s.TnxType),
		Amount:    s.Amount,
		Comment:   s.Comment,
		CreatedAt: s.CreatedAt,
	}
}

type paymentSchema struct {
	ID             int64           `db:"id"`
	ClientID       int64           `db:"client_id"`
	OrderID        uuid.UUID       `db:"order_id"`
	Status         string          `db:"status"`
	System         string          `db:"payment_system"`
	ExpectedAmount decimal.Decimal `db:"expected_amount"`
	Amount         decimal.Decimal `db:"amount"`
	PayedDate      *time.Time      `db:"payed_date"`
	ReqDate        *time.Time      `db:"req_date"`
	Data           []byte          `db:"data"`
	BillID         *int64          `db:"bill_id"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (s *paymentSchema) toDomain() *entity.Payment {
	return &entity.Payment{
		ID:             s.ID,
		ClientID:       s.ClientID,
		OrderID:        s.OrderID,
		Status:         entity.PaymentStatus(s.Status),
		System:         entity.PaymentSystemKind(s.System),
		ExpectedAmount: s.ExpectedAmount,
		Amount:         s.Amount,
		PayedDate:      s.PayedDate,
		ReqDate:        s.ReqDate,
		Data:           s.Data,
		BillID:         s.BillID,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

type clientSchema struct {
	ID        int64     `db:"id"`
	Email     string    `db:"email"`
	CompanyID int64     `db:"company_id"`
	FaceType  int       `db:"face_type"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *clientSchema) toDomain() *entity.Client {
	return &entity.Client{
		ID:        s.ID,
		Email:     s.Email,
		CompanyID: s.CompanyID,
		FaceType:  entity.FaceType(s.FaceType),
		CreatedAt: s.CreatedAt,
	}
}

type companySchema struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Address     string    `db:"address"`
	INN         string    `db:"inn"`
	VAT         int       `db:"vat"`
	IsVATActive bool      `db:"is_vat_active"`
	CreatedAt   time.Time `db:"created_at"`
}

func (s *companySchema) toDomain() *entity.Company {
	return &entity.Company{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		INN:         s.INN,
		VAT:         s.VAT,
		IsVATActive: s.IsVATActive,
		CreatedAt:   s.CreatedAt,
	}
}
