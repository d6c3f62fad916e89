package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/pkg/errcodes"
)

const paymentColumns = `
	id, client_id, order_id, status, payment_system, expected_amount, amount,
	payed_date, req_date, data, bill_id, created_at, updated_at`

type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository создаёт новый экземпляр репозитория.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create сохраняет новый платёж.
func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (client_id, order_id, status, payment_system, expected_amount, amount)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		payment.ClientID, payment.OrderID, string(payment.Status),
		string(payment.System), payment.ExpectedAmount, payment.Amount)

	if err := row.Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert payment")
	}

	return nil
}

// GetByID возвращает платёж по идентификатору.
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var schema paymentSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.NotFound, "payment not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get payment")
	}

	return schema.toDomain(), nil
}

// GetByOrderID возвращает платёж по внешнему идентификатору заказа.
// По нему платёжные системы адресуют коллбеки.
func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1`

	var schema paymentSchema
	if err := r.db.GetContext(ctx, &schema, query, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.NotFound, "payment not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get payment")
	}

	return schema.toDomain(), nil
}

// Update перезаписывает изменяемые поля платежа.
func (r *PaymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE payments
			SET status = $1, amount = $2, payed_date = $3, req_date = $4,
				data = $5, bill_id = $6, updated_at = now()
			WHERE id = $7`

		res, err := tx.ExecContext(ctx, query,
			string(payment.Status), payment.Amount, payment.PayedDate,
			payment.ReqDate, payment.Data, payment.BillID, payment.ID)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to update payment")
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
		}

		if rows == 0 {
			return domain.NewError(errcodes.NotFound, "payment not found")
		}

		return nil
	})
}

// ListByClient возвращает платежи клиента, новые первыми.
func (r *PaymentRepository) ListByClient(ctx context.Context, clientID int64) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE client_id = $1
		ORDER BY created_at DESC, id DESC`

	var schemas []paymentSchema
	if err := r.db.SelectContext(ctx, &schemas, query, clientID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list payments")
	}

	payments := make([]*entity.Payment, 0, len(schemas))
	for i := range schemas {
		payments = append(payments, schemas[i].toDomain())
	}

	return payments, nil
}
