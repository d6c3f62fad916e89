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

const productColumns = `
	id, seller_id, name, description, start_price, buy_price,
	start_date, end_date, status, created_at, updated_at`

type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository создаёт новый экземпляр репозитория.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create сохраняет новый товар.
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (seller_id, name, description, start_price, buy_price,
			start_date, end_date, status)
		VALUES (:seller_id, :name, :description, :start_price, :buy_price,
			:start_date, :end_date, :status)
		RETURNING id, created_at, updated_at`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to prepare insert")
	}
	defer stmt.Close()

	var inserted struct {
		ID        int64        `db:"id"`
		CreatedAt sql.NullTime `db:"created_at"`
		UpdatedAt sql.NullTime `db:"updated_at"`
	}

	if err := stmt.GetContext(ctx, &inserted, fromProduct(product)); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert product")
	}

	product.ID = inserted.ID
	product.CreatedAt = inserted.CreatedAt.Time
	product.UpdatedAt = inserted.UpdatedAt.Time

	return nil
}

// GetByID возвращает товар по идентификатору.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var schema productSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.NotFound, "product not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get product")
	}

	return schema.toDomain(), nil
}

// Update перезаписывает изменяемые поля товара.
func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE products
			SET name = :name, description = :description, start_price = :start_price,
				buy_price = :buy_price, start_date = :start_date, end_date = :end_date,
				status = :status, updated_at = now()
			WHERE id = :id`

		res, err := tx.NamedExecContext(ctx, query, fromProduct(product))
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to update product")
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
		}

		if rows == 0 {
			return domain.NewError(errcodes.NotFound, "product not found")
		}

		return nil
	})
}

// ListBySeller возвращает товары продавца, новые первыми.
func (r *ProductRepository) ListBySeller(ctx context.Context, sellerID int64) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE seller_id = $1
		ORDER BY created_at DESC`

	var schemas []productSchema
	if err := r.db.SelectContext(ctx, &schemas, query, sellerID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(schemas))
	for i := range schemas {
		products = append(products, schemas[i].toDomain())
	}

	return products, nil
}
