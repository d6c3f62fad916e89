package entity

import "time"

type FaceType int

const (
	FaceInd FaceType = 1 // Физ лицо
	FaceLtd FaceType = 2 // Юр лицо
	FaceEnt FaceType = 3 // ИП
	FaceGov FaceType = 4 // Бюджет
)

// Client — участник аукциона. Выступает и продавцом, и покупателем:
// владеет товарами, ставками, счетами и транзакциями баланса.
type Client struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CompanyID int64     `json:"company_id" db:"company_id"`
	FaceType  FaceType  `json:"face_type" db:"face_type"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Company несёт налоговую конфигурацию клиента. Ставка НДС наследуется
// всеми клиентами компании.
type Company struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Address     string    `json:"address" db:"address"`
	INN         string    `json:"inn" db:"inn"`
	VAT         int       `json:"vat" db:"vat"` // НДС, процент
	IsVATActive bool      `json:"is_vat_active" db:"is_vat_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
