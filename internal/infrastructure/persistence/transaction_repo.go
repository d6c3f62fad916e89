package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/pkg/errcodes"
)

type TransactionRepository struct {
	db *sqlx.DB
}

// NewTransactionRepository создаёт новый экземпляр репозитория.
func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create добавляет запись в журнал. Записи неизменяемы, UPDATE и DELETE
// по transactions в коде отсутствуют.
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	query := `
		INSERT INTO transactions (client_id, bill_id, tnx_type, amount, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	row := r.db.QueryRowxContext(ctx, query,
		txn.ClientID, txn.BillID, string(txn.Type), txn.Amount, txn.Comment)

	if err := row.Scan(&txn.ID, &txn.CreatedAt); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert transaction")
	}

	return nil
}

// SumAmountByClient считает баланс клиента свежей суммой по журналу.
func (r *TransactionRepository) SumAmountByClient(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE client_id = $1`

	var sum decimal.Decimal
	if err := r.db.GetContext(ctx, &sum, query, clientID); err != nil {
		return decimal.Zero, domain.WrapError(err, errcodes.InternalServerError, "failed to sum transactions")
	}

	return sum, nil
}

// ListByClient возвращает историю операций клиента, новые первыми.
func (r *TransactionRepository) ListByClient(ctx context.Context, clientID int64) ([]entity.Transaction, error) {
	query := `
		SELECT id, client_id, bill_id, tnx_type, amount, comment, created_at
		FROM transactions
		WHERE client_id = $1
		ORDER BY created_at DESC, id DESC`

	var schemas []transactionSchema
	if err := r.db.SelectContext(ctx, &schemas, query, clientID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list transactions")
	}

	txns := make([]entity.Transaction, 0, len(schemas))
	for i := range schemas {
		txns = append(txns, schemas[i].toDomain())
	}

	return txns, nil
}
