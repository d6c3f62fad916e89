package billing

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

// BillRepository — хранилище счетов. ActivateWithTransaction обязано
// выполнить перевод статуса и вставку транзакции в одной транзакции БД:
// активация атомарна с созданием движения по балансу.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id int64) (*entity.Bill, error)
	ActivateWithTransaction(ctx context.Context, billID int64, txn *entity.Transaction) error
	ListByClient(ctx context.Context, clientID int64) ([]entity.Bill, error)
}

// Service управляет жизненным циклом счетов: создание всегда в статусе
// not_activated, активация диспетчеризуется по типу счёта и создаёт
// ровно одну транзакцию баланса.
type Service struct {
	bills BillRepository
}

func NewService(bills BillRepository) *Service {
	return &Service{bills: bills}
}

// CreateBill создаёт неактивированный счёт.
func (s *Service) CreateBill(
	ctx context.Context,
	clientID int64,
	billType entity.BillType,
	amount decimal.Decimal,
	vat int,
) (*entity.Bill, error) {
	if _, ok := strategies[billType]; !ok {
		return nil, domain.NewError(errcodes.UnknownBillType, "unknown bill type "+string(billType))
	}

	if !amount.IsPositive() {
		return nil, domain.NewError(errcodes.InvalidAmount, "bill amount should be positive")
	}

	bill := &entity.Bill{
		ClientID: clientID,
		Type:     billType,
		Status:   entity.BillStatusNotActivated,
		Amount:   amount,
		VAT:      vat,
	}

	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("bills.Create: %w", err)
	}

	return bill, nil
}

// Activate активирует счёт: стратегия по типу счёта собирает транзакцию,
// хранилище атомарно сохраняет её вместе со сменой статуса. Повторная
// активация отклоняется, иначе ретрай воркера раздвоил бы движение
// по балансу.
func (s *Service) Activate(ctx context.Context, billID int64) (*entity.Bill, error) {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("bills.GetByID: %w", err)
	}

	if bill.Status != entity.BillStatusNotActivated {
		return nil, domain.NewError(errcodes.WrongStatus, "bill can not be activated from status "+string(bill.Status))
	}

	strat, ok := strategies[bill.Type]
	if !ok {
		return nil, domain.NewError(errcodes.UnknownBillType, "unknown bill type "+string(bill.Type))
	}

	txn, err := strat(bill)
	if err != nil {
		return nil, err
	}

	if txn == nil {
		return nil, domain.NewError(errcodes.TransactionNotCreated, "strategy returned no transaction")
	}

	if err := s.bills.ActivateWithTransaction(ctx, bill.ID, txn); err != nil {
		return nil, fmt.Errorf("bills.ActivateWithTransaction: %w", err)
	}

	bill.Status = entity.BillStatusActivated

	logger(ctx).Info("bill activated",
		"bill_id", bill.ID,
		"bill_type", string(bill.Type),
		"amount", bill.Amount.StringFixed(2),
	)

	return bill, nil
}

// GetByID возвращает счёт.
func (s *Service) GetByID(ctx context.Context, billID int64) (*entity.Bill, error) {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, fmt.Errorf("bills.GetByID: %w", err)
	}

	return bill, nil
}

// ListByClient — счета клиента.
func (s *Service) ListByClient(ctx context.Context, clientID int64) ([]entity.Bill, error) {
	bills, err := s.bills.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("bills.ListByClient: %w", err)
	}

	return bills, nil
}
