package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/internal/domain/service/ledger"
	"auction_market/pkg/errcodes"
)

type memTransactionRepo struct {
	txns []entity.Transaction
}

func (r *memTransactionRepo) Create(_ context.Context, txn *entity.Transaction) error {
	txn.ID = int64(len(r.txns) + 1)
	r.txns = append(r.txns, *txn)

	return nil
}

func (r *memTransactionRepo) SumAmountByClient(_ context.Context, clientID int64) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, txn := range r.txns {
		if txn.ClientID == clientID {
			sum = sum.Add(txn.Amount)
		}
	}

	return sum, nil
}

func (r *memTransactionRepo) ListByClient(_ context.Context, clientID int64) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, txn := range r.txns {
		if txn.ClientID == clientID {
			out = append(out, txn)
		}
	}

	return out, nil
}

func TestLedgerSigns(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := &memTransactionRepo{}
	svc := ledger.NewService(repo)

	deposit, err := svc.Deposit(ctx, 1, 10, decimal.NewFromInt(100), "prepay")
	rq.NoError(err)
	rq.Equal(entity.TransactionTypeDeposit, deposit.Type)
	rq.Equal("100", deposit.Amount.String())

	expense, err := svc.Expense(ctx, 1, 11, decimal.NewFromInt(30), "sell")
	rq.NoError(err)
	rq.Equal(entity.TransactionTypeExpense, expense.Type)
	rq.Equal("-30", expense.Amount.String(), "expense is stored negated")

	cancellation, err := svc.Cancellation(ctx, 1, 11, decimal.NewFromInt(5), "refund")
	rq.NoError(err)
	rq.Equal("5", cancellation.Amount.String())

	balance, err := svc.Balance(ctx, 1)
	rq.NoError(err)
	rq.Equal("75", balance.String())
}

func TestLedgerRejectsNonPositiveAmounts(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	svc := ledger.NewService(&memTransactionRepo{})

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		_, err := svc.Deposit(ctx, 1, 1, amount, "")
		code, ok := domain.GetCode(err)
		rq.True(ok)
		rq.Equal(errcodes.InvalidAmount, code)

		_, err = svc.Expense(ctx, 1, 1, amount, "")
		rq.Error(err)

		_, err = svc.Withdraw(ctx, 1, 1, amount, "")
		rq.Error(err)

		_, err = svc.Cancellation(ctx, 1, 1, amount, "")
		rq.Error(err)
	}
}

// Expense может увести баланс в минус, Withdraw — нет.
func TestLedgerWithdrawRequiresBalance(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := &memTransactionRepo{}
	svc := ledger.NewService(repo)

	_, err := svc.Deposit(ctx, 1, 1, decimal.NewFromInt(50), "")
	rq.NoError(err)

	_, err = svc.Withdraw(ctx, 1, 2, decimal.NewFromInt(51), "")
	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.InsufficientBalance, code)

	_, err = svc.Expense(ctx, 1, 2, decimal.NewFromInt(80), "")
	rq.NoError(err)

	balance, err := svc.Balance(ctx, 1)
	rq.NoError(err)
	rq.Equal("-30", balance.String())

	_, err = svc.Withdraw(ctx, 1, 3, decimal.NewFromInt(1), "")
	rq.Error(err)
}

func TestLedgerWithdrawExactBalance(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := &memTransactionRepo{}
	svc := ledger.NewService(repo)

	_, err := svc.Deposit(ctx, 1, 1, decimal.NewFromInt(50), "")
	rq.NoError(err)

	_, err = svc.Withdraw(ctx, 1, 2, decimal.NewFromInt(50), "")
	rq.NoError(err)

	balance, err := svc.Balance(ctx, 1)
	rq.NoError(err)
	rq.True(balance.IsZero())
}

func TestLedgerHistoryPerClient(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := &memTransactionRepo{}
	svc := ledger.NewService(repo)

	_, err := svc.Deposit(ctx, 1, 1, decimal.NewFromInt(10), "")
	rq.NoError(err)
	_, err = svc.Deposit(ctx, 2, 2, decimal.NewFromInt(20), "")
	rq.NoError(err)

	history, err := svc.History(ctx, 1)
	rq.NoError(err)
	rq.Len(history, 1)

	balance, err := svc.Balance(ctx, 2)
	rq.NoError(err)
	rq.Equal("20", balance.String())
}
