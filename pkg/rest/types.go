// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import "time"

// Product Лот аукциона. Денежные поля — десятичные строки.
type Product struct {
	ID          int64      `json:"id"`
	SellerID    int64      `json:"seller_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartPrice  string     `json:"start_price"`
	BuyPrice    *string    `json:"buy_price,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CreateProductRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	StartPrice  string     `json:"start_price" validate:"required"`
	BuyPrice    *string    `json:"buy_price,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartPrice  *string    `json:"start_price,omitempty"`
	BuyPrice    *string    `json:"buy_price,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type Bid struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	ProductID int64     `json:"product_id"`
	Price     string    `json:"price"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type PlaceBidRequest struct {
	Price string `json:"price" validate:"required"`
}

type Deal struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	BuyerID   int64     `json:"buyer_id"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type Bill struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	BillType  string    `json:"bill_type"`
	Status    string    `json:"status"`
	Amount    string    `json:"amount"`
	VAT       int       `json:"vat"`
	CreatedAt time.Time `json:"created_at"`
}

type Transaction struct {
	ID        int64     `json:"id"`
	BillID    int64     `json:"bill_id"`
	TnxType   string    `json:"tnx_type"`
	Amount    string    `json:"amount"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Balance struct {
	ClientID int64  `json:"client_id"`
	Balance  string `json:"balance"`
}

type Payment struct {
	ID             int64      `json:"id"`
	OrderID        string     `json:"order_id"`
	Status         string     `json:"status"`
	PaymentSystem  string     `json:"payment_system"`
	ExpectedAmount string     `json:"expected_amount"`
	Amount         string     `json:"amount"`
	PayedDate      *time.Time `json:"payed_date,omitempty"`
	BillID         *int64     `json:"bill_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CreatePaymentRequest struct {
	PaymentSystem string `json:"payment_system" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
