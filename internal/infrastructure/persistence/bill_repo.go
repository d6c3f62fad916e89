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

const billColumns = `id, client_id, bill_type, status, amount, vat, created_at, updated_at`

type BillRepository struct {
	db *sqlx.DB
}

// NewBillRepository создаёт новый экземпляр репозитория.
func NewBillRepository(db *sqlx.DB) *BillRepository {
	return &BillRepository{db: db}
}

// Create сохраняет новый счёт.
func (r *BillRepository) Create(ctx context.Context, bill *entity.Bill) error {
	query := `
		INSERT INTO bills (client_id, bill_type, status, amount, vat)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		bill.ClientID, string(bill.Type), string(bill.Status), bill.Amount, bill.VAT)

	if err := row.Scan(&bill.ID, &bill.CreatedAt, &bill.UpdatedAt); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert bill")
	}

	return nil
}

// GetByID возвращает счёт по идентификатору.
func (r *BillRepository) GetByID(ctx context.Context, id int64) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`

	var schema billSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.NotFound, "bill not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get bill")
	}

	return schema.toDomain(), nil
}

// ActivateWithTransaction атомарно переводит счёт в activated и пишет
// транзакцию баланса. Перевод условный: счёт должен быть not_activated,
// иначе WrongStatus — конкурентная повторная активация не породит
// вторую транзакцию.
func (r *BillRepository) ActivateWithTransaction(ctx context.Context, billID int64, txn *entity.Transaction) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		updateQuery := `
			UPDATE bills
			SET status = $1, updated_at = now()
			WHERE id = $2 AND status = $3`

		res, err := tx.ExecContext(ctx, updateQuery,
			string(entity.BillStatusActivated), billID, string(entity.BillStatusNotActivated))
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to activate bill")
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
		}

		if rows == 0 {
			// Либо счёта нет, либо он уже не not_activated.
			var exists bool
			if err := tx.GetContext(ctx, &exists,
				`SELECT EXISTS(SELECT 1 FROM bills WHERE id = $1)`, billID); err != nil {
				return domain.WrapError(err, errcodes.InternalServerError, "failed to check bill existence")
			}

			if !exists {
				return domain.NewError(errcodes.NotFound, "bill not found")
			}

			return domain.NewError(errcodes.WrongStatus, "bill is not in not_activated status")
		}

		insertQuery := `
			INSERT INTO transactions (client_id, bill_id, tnx_type, amount, comment)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`

		row := tx.QueryRowxContext(ctx, insertQuery,
			txn.ClientID, billID, string(txn.Type), txn.Amount, txn.Comment)

		if err := row.Scan(&txn.ID, &txn.CreatedAt); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert transaction")
		}

		txn.BillID = billID

		return nil
	})
}

// ListByClient возвращает счета клиента, новые первыми.
func (r *BillRepository) ListByClient(ctx context.Context, clientID int64) ([]entity.Bill, error) {
	query := `SELECT ` + billColumns + `
		FROM bills
		WHERE client_id = $1
		ORDER BY created_at DESC, id DESC`

	var schemas []billSchema
	if err := r.db.SelectContext(ctx, &schemas, query, clientID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list bills")
	}

	bills := make([]entity.Bill, 0, len(schemas))
	for i := range schemas {
		bills = append(bills, *schemas[i].toDomain())
	}

	return bills, nil
}
