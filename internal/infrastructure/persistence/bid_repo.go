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

type BidRepository struct {
	db *sqlx.DB
}

// NewBidRepository создаёт новый экземпляр репозитория.
func NewBidRepository(db *sqlx.DB) *BidRepository {
	return &BidRepository{db: db}
}

// Create принимает ставку атомарно: блокирует строку товара, сравнивает
// цену с максимумом существующих ставок (в любом статусе) и вставляет.
// Конкурентные ставки сериализуются на блокировке, равная цена
// проигрывает — побеждает та, что успела первой.
func (r *BidRepository) Create(ctx context.Context, bid *entity.Bid) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var status string

		lockQuery := `SELECT status FROM products WHERE id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &status, lockQuery, bid.ProductID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NewError(errcodes.NotFound, "product not found")
			}
			return domain.WrapError(err, errcodes.InternalServerError, "failed to lock product")
		}

		// Статус перечитывается под блокировкой: товар мог закрыться
		// между чтением и вставкой.
		if status != string(entity.ProductStatusActive) {
			return domain.NewError(errcodes.WrongStatus, "bids are accepted only for active products")
		}

		var blocked bool

		existsQuery := `SELECT EXISTS(SELECT 1 FROM bids WHERE product_id = $1 AND price >= $2)`
		if err := tx.GetContext(ctx, &blocked, existsQuery, bid.ProductID, bid.Price); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to check existing bids")
		}

		if blocked {
			return domain.NewError(errcodes.AlreadyHasHigherBid, "a bid with an equal or higher price already exists")
		}

		insertQuery := `
			INSERT INTO bids (client_id, product_id, price, status)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`

		row := tx.QueryRowxContext(ctx, insertQuery,
			bid.ClientID, bid.ProductID, bid.Price, string(entity.BidStatusActive))

		if err := row.Scan(&bid.ID, &bid.CreatedAt); err != nil {
			// Страховка от гонки вне блокировки: равные цены режет индекс.
			if isUniqueViolation(err, "ux_bids_product_price") {
				return domain.NewError(errcodes.AlreadyHasHigherBid, "a bid with an equal or higher price already exists")
			}
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert bid")
		}

		bid.Status = entity.BidStatusActive

		return nil
	})
}

// GetWinning возвращает победившую ставку: максимальная цена, при
// равных — меньший id. Удалённые ставки не участвуют.
func (r *BidRepository) GetWinning(ctx context.Context, productID int64) (*entity.Bid, error) {
	query := `
		SELECT id, client_id, product_id, price, status, created_at
		FROM bids
		WHERE product_id = $1 AND status = $2
		ORDER BY price DESC, id ASC
		LIMIT 1`

	var schema bidSchema
	if err := r.db.GetContext(ctx, &schema, query, productID, string(entity.BidStatusActive)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.NotFound, "no bids for product")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get winning bid")
	}

	return schema.toDomain(), nil
}

// ListByProduct возвращает ставки товара, дорогие первыми.
func (r *BidRepository) ListByProduct(ctx context.Context, productID int64) ([]entity.Bid, error) {
	query := `
		SELECT id, client_id, product_id, price, status, created_at
		FROM bids
		WHERE product_id = $1
		ORDER BY price DESC, id ASC`

	var schemas []bidSchema
	if err := r.db.SelectContext(ctx, &schemas, query, productID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list bids")
	}

	bids := make([]entity.Bid, 0, len(schemas))
	for i := range schemas {
		bids = append(bids, *schemas[i].toDomain())
	}

	return bids, nil
}
