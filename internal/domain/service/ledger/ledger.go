package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/pkg/contextx"
	"auction_market/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// TransactionRepository — хранилище транзакций баланса. Записи только
// добавляются; баланс считается агрегатом по запросу, без
// денормализованного счётчика.
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	SumAmountByClient(ctx context.Context, clientID int64) (decimal.Decimal, error)
	ListByClient(ctx context.Context, clientID int64) ([]entity.Transaction, error)
}

// Service — движок баланса. Четыре операции, каждая валидирует вход и
// добавляет ровно одну неизменяемую запись. Счета и товары сервис не
// трогает, последовательность операций — забота вызывающих стратегий.
type Service struct {
	transactions TransactionRepository
}

func NewService(transactions TransactionRepository) *Service {
	return &Service{transactions: transactions}
}

// NewDeposit собирает транзакцию зачисления без сохранения. Используется
// стратегиями счетов, которым нужна атомарность с активацией.
func NewDeposit(clientID, billID int64, amount decimal.Decimal, comment string) (*entity.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domain.NewError(errcodes.InvalidAmount, "amount param should be positive")
	}

	return &entity.Transaction{
		ClientID: clientID,
		BillID:   billID,
		Type:     entity.TransactionTypeDeposit,
		Amount:   amount,
		Comment:  comment,
	}, nil
}

// NewExpense собирает транзакцию списания без сохранения. Сумма
// передаётся положительной, хранится с минусом. Достаточность баланса
// не проверяется: списания могут увести баланс в минус.
func NewExpense(clientID, billID int64, amount decimal.Decimal, comment string) (*entity.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domain.NewError(errcodes.InvalidAmount, "amount param should be positive")
	}

	return &entity.Transaction{
		ClientID: clientID,
		BillID:   billID,
		Type:     entity.TransactionTypeExpense,
		Amount:   amount.Neg(),
		Comment:  comment,
	}, nil
}

// Deposit — зачисление на баланс клиента.
func (s *Service) Deposit(ctx context.Context, clientID, billID int64, amount decimal.Decimal, comment string) (*entity.Transaction, error) {
	txn, err := NewDeposit(clientID, billID, amount, comment)
	if err != nil {
		return nil, err
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("transactions.Create: %w", err)
	}

	return txn, nil
}

// Expense — списание с баланса клиента.
func (s *Service) Expense(ctx context.Context, clientID, billID int64, amount decimal.Decimal, comment string) (*entity.Transaction, error) {
	txn, err := NewExpense(clientID, billID, amount, comment)
	if err != nil {
		return nil, err
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("transactions.Create: %w", err)
	}

	return txn, nil
}

// Withdraw — вывод средств во вне. В отличие от Expense требует
// достаточного баланса.
func (s *Service) Withdraw(ctx context.Context, clientID, billID int64, amount decimal.Decimal, comment string) (*entity.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domain.NewError(errcodes.InvalidAmount, "amount param should be positive")
	}

	balance, err := s.Balance(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if balance.LessThan(amount) {
		return nil, domain.NewError(errcodes.InsufficientBalance, "not enough amount on balance")
	}

	txn := &entity.Transaction{
		ClientID: clientID,
		BillID:   billID,
		Type:     entity.TransactionTypeWithdraw,
		Amount:   amount.Neg(),
		Comment:  comment,
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("transactions.Create: %w", err)
	}

	return txn, nil
}

// Cancellation — возврат средств, обратная операция к списанию.
func (s *Service) Cancellation(ctx context.Context, clientID, billID int64, amount decimal.Decimal, comment string) (*entity.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domain.NewError(errcodes.InvalidAmount, "amount param should be positive")
	}

	txn := &entity.Transaction{
		ClientID: clientID,
		BillID:   billID,
		Type:     entity.TransactionTypeCancellation,
		Amount:   amount,
		Comment:  comment,
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("transactions.Create: %w", err)
	}

	logger(ctx).Info("cancellation stored", "client_id", clientID, "bill_id", billID)

	return txn, nil
}

// Balance — текущий баланс клиента, сумма всех его транзакций.
// Считается заново при каждом вызове.
func (s *Service) Balance(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	sum, err := s.transactions.SumAmountByClient(ctx, clientID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("transactions.SumAmountByClient: %w", err)
	}

	return sum, nil
}

// History — транзакции клиента, в порядке создания.
func (s *Service) History(ctx context.Context, clientID int64) ([]entity.Transaction, error) {
	txns, err := s.transactions.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("transactions.ListByClient: %w", err)
	}

	return txns, nil
}
