package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/pkg/errcodes"
)

type DealRepository struct {
	db *sqlx.DB
}

// NewDealRepository создаёт новый экземпляр репозитория.
func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

// Create сохраняет сделку. Одна сделка на товар: повтор режется
// уникальным ограничением и превращается в DealAlreadyExists, гонки
// конкурентных закрытий схлопываются здесь.
func (r *DealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	query := `
		INSERT INTO deals (product_id, buyer_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	row := r.db.QueryRowxContext(ctx, query, deal.ProductID, deal.BuyerID, deal.Amount)

	if err := row.Scan(&deal.ID, &deal.CreatedAt); err != nil {
		if isUniqueViolation(err, "ux_deals_product") {
			return domain.NewError(errcodes.DealAlreadyExists, "deal for product already exists")
		}
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert deal")
	}

	return nil
}

// GetByID возвращает сделку по идентификатору.
func (r *DealRepository) GetByID(ctx context.Context, id int64) (*entity.Deal, error) {
	query := `SELECT id, product_id, buyer_id, amount, created_at FROM deals WHERE id = $1`

	var schema dealSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.NotFound, "deal not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get deal")
	}

	return schema.toDomain(), nil
}

// GetByProductID возвращает сделку по товару, если аукцион уже закрыт.
func (r *DealRepository) GetByProductID(ctx context.Context, productID int64) (*entity.Deal, error) {
	query := `SELECT id, product_id, buyer_id, amount, created_at FROM deals WHERE product_id = $1`

	var schema dealSchema
	if err := r.db.GetContext(ctx, &schema, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.NotFound, "deal not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get deal")
	}

	return schema.toDomain(), nil
}

// AttachBill связывает счёт со сделкой.
func (r *DealRepository) AttachBill(ctx context.Context, dealID, billID int64) error {
	query := `INSERT INTO deal_bills (deal_id, bill_id) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, dealID, billID); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to attach bill")
	}

	return nil
}

// ListBills возвращает счета сделки в порядке создания.
func (r *DealRepository) ListBills(ctx context.Context, dealID int64) ([]entity.Bill, error) {
	query := `
		SELECT b.id, b.client_id, b.bill_type, b.status, b.amount, b.vat,
			b.created_at, b.updated_at
		FROM bills b
		JOIN deal_bills db ON db.bill_id = b.id
		WHERE db.deal_id = $1
		ORDER BY b.id ASC`

	var schemas []billSchema
	if err := r.db.SelectContext(ctx, &schemas, query, dealID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list deal bills")
	}

	bills := make([]entity.Bill, 0, len(schemas))
	for i := range schemas {
		bills = append(bills, *schemas[i].toDomain())
	}

	return bills, nil
}
