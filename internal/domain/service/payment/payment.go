package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"auction_market/internal/domain/entity"
	"auction_market/internal/infrastructure/paysystem"
	"auction_market/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id int64) (*entity.Payment, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	ListByClient(ctx context.Context, clientID int64) ([]*entity.Payment, error)
}

type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	GetCompany(ctx context.Context, companyID int64) (*entity.Company, error)
}

// Billing — создание и немедленная активация счёта пополнения при
// успешной оплате.
type Billing interface {
	CreateBill(ctx context.Context, clientID int64, billType entity.BillType, amount decimal.Decimal, vat int) (*entity.Bill, error)
	Activate(ctx context.Context, billID int64) (*entity.Bill, error)
}

// Gateways — выбор стратегии платёжной системы.
type Gateways interface {
	Get(kind entity.PaymentSystemKind) (paysystem.Gateway, error)
}

// Service — платёжные счета: приём денег из внешних платёжных систем
// на баланс клиента.
type Service struct {
	payments PaymentRepository
	clients  ClientRepository
	billing  Billing
	gateways Gateways

	now func() time.Time
}

func NewService(
	payments PaymentRepository,
	clients ClientRepository,
	billing Billing,
	gateways Gateways,
) *Service {
	return &Service{
		payments: payments,
		clients:  clients,
		billing:  billing,
		gateways: gateways,
		now:      time.Now,
	}
}

// WithClock подменяет источник времени для тестов.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreatePayment регистрирует новый платёж в статусе not_payed.
func (s *Service) CreatePayment(
	ctx context.Context,
	clientID int64,
	system entity.PaymentSystemKind,
	expectedAmount decimal.Decimal,
) (*entity.Payment, error) {
	if _, err := s.gateways.Get(system); err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		ClientID:       clientID,
		OrderID:        uuid.New(),
		Status:         entity.PaymentStatusNotPayed,
		System:         system,
		ExpectedAmount: expectedAmount,
		Amount:         decimal.Zero,
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("payments.Create: %w", err)
	}

	return payment, nil
}

// Process отдаёт платёж в платёжную систему и применяет результат.
func (s *Service) Process(ctx context.Context, paymentID int64) (*entity.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payments.GetByID: %w", err)
	}

	gateway, err := s.gateways.Get(payment.System)
	if err != nil {
		return nil, err
	}

	result, err := gateway.ProcessPayment(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("gateway.ProcessPayment: %w", err)
	}

	if err := s.apply(ctx, payment, result); err != nil {
		return nil, err
	}

	return payment, nil
}

// HandleCallback обрабатывает внешний запрос платёжной системы.
// Сырой payload сохраняется в платёж как есть.
func (s *Service) HandleCallback(ctx context.Context, orderID uuid.UUID, payload []byte) (*entity.Payment, error) {
	payment, err := s.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("payments.GetByOrderID: %w", err)
	}

	gateway, err := s.gateways.Get(payment.System)
	if err != nil {
		return nil, err
	}

	result, err := gateway.ProcessExternalCallback(ctx, payment, payload)
	if err != nil {
		return nil, fmt.Errorf("gateway.ProcessExternalCallback: %w", err)
	}

	if err := s.apply(ctx, payment, result); err != nil {
		return nil, err
	}

	return payment, nil
}

// apply переводит платёж по статусу из результата шлюза. Успех создаёт
// счёт пополнения и активирует его сразу же.
func (s *Service) apply(ctx context.Context, payment *entity.Payment, result *paysystem.Result) error {
	payment.Data = result.RawPayload

	switch result.Status {
	case paysystem.StatusSucceeded:
		return s.applySuccess(ctx, payment)
	case paysystem.StatusPending:
		if err := payment.SetPending(s.now()); err != nil {
			return err
		}
	case paysystem.StatusFailed:
		if err := payment.SetFailed(); err != nil {
			return err
		}
	}

	if err := s.payments.Update(ctx, payment); err != nil {
		return fmt.Errorf("payments.Update: %w", err)
	}

	logger(ctx).Info("payment processed",
		"payment_id", payment.ID,
		"order_id", payment.OrderID.String(),
		"status", string(payment.Status),
	)

	return nil
}

// applySuccess идемпотентен относительно ретраев коллбека. Порядок
// жёсткий: сначала фиксируется статус payed, и только потом двигаются
// деньги — сбой до зачисления ретрай доводит до конца, сбой после
// зачисления не пройдёт guard SetPayed повторно.
func (s *Service) applySuccess(ctx context.Context, payment *entity.Payment) error {
	if payment.Status != entity.PaymentStatusPayed {
		if err := payment.SetPayed(payment.ExpectedAmount, s.now()); err != nil {
			return err
		}

		if err := s.payments.Update(ctx, payment); err != nil {
			return fmt.Errorf("payments.Update: %w", err)
		}
	}

	if payment.BillID == nil {
		if err := s.createPrepayBill(ctx, payment); err != nil {
			return err
		}

		if err := s.payments.Update(ctx, payment); err != nil {
			return fmt.Errorf("payments.Update: %w", err)
		}
	}

	logger(ctx).Info("payment processed",
		"payment_id", payment.ID,
		"order_id", payment.OrderID.String(),
		"status", string(payment.Status),
	)

	return nil
}

func (s *Service) createPrepayBill(ctx context.Context, payment *entity.Payment) error {
	client, err := s.clients.GetByID(ctx, payment.ClientID)
	if err != nil {
		return fmt.Errorf("clients.GetByID: %w", err)
	}

	company, err := s.clients.GetCompany(ctx, client.CompanyID)
	if err != nil {
		return fmt.Errorf("clients.GetCompany: %w", err)
	}

	bill, err := s.billing.CreateBill(ctx, payment.ClientID, entity.BillTypePrepay, payment.Amount, company.VAT)
	if err != nil {
		return fmt.Errorf("billing.CreateBill: %w", err)
	}

	if _, err := s.billing.Activate(ctx, bill.ID); err != nil {
		return fmt.Errorf("billing.Activate: %w", err)
	}

	payment.BillID = &bill.ID

	return nil
}

// GetByID возвращает платёж.
func (s *Service) GetByID(ctx context.Context, paymentID int64) (*entity.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("payments.GetByID: %w", err)
	}

	return payment, nil
}

// ListByClient — платежи клиента, новые первыми.
func (s *Service) ListByClient(ctx context.Context, clientID int64) ([]*entity.Payment, error) {
	payments, err := s.payments.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("payments.ListByClient: %w", err)
	}

	return payments, nil
}
