package payment_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/internal/domain/service/payment"
	"auction_market/internal/infrastructure/paysystem"
	"auction_market/pkg/errcodes"
)

type memPaymentRepo struct {
	payments map[int64]*entity.Payment
	maxID    int64

	failNextUpdate bool
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{payments: make(map[int64]*entity.Payment)}
}

func (r *memPaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	r.maxID++
	p.ID = r.maxID

	stored := *p
	r.payments[p.ID] = &stored

	return nil
}

func (r *memPaymentRepo) GetByID(_ context.Context, id int64) (*entity.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, domain.NewError(errcodes.NotFound, "payment not found")
	}

	copied := *p

	return &copied, nil
}

func (r *memPaymentRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) (*entity.Payment, error) {
	for _, p := range r.payments {
		if p.OrderID == orderID {
			copied := *p
			return &copied, nil
		}
	}

	return nil, domain.NewError(errcodes.NotFound, "payment not found")
}

func (r *memPaymentRepo) Update(_ context.Context, p *entity.Payment) error {
	if r.failNextUpdate {
		r.failNextUpdate = false
		return domain.NewError(errcodes.InternalServerError, "storage unavailable")
	}

	if _, ok := r.payments[p.ID]; !ok {
		return domain.NewError(errcodes.NotFound, "payment not found")
	}

	stored := *p
	r.payments[p.ID] = &stored

	return nil
}

func (r *memPaymentRepo) ListByClient(_ context.Context, clientID int64) ([]*entity.Payment, error) {
	var payments []*entity.Payment

	for _, p := range r.payments {
		if p.ClientID == clientID {
			copied := *p
			payments = append(payments, &copied)
		}
	}

	return payments, nil
}

type memClientRepo struct{}

func (memClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	return &entity.Client{ID: id, Email: "client@acme.test", CompanyID: 10}, nil
}

func (memClientRepo) GetCompany(_ context.Context, companyID int64) (*entity.Company, error) {
	return &entity.Company{ID: companyID, Name: "acme", VAT: 20}, nil
}

type fakeBilling struct {
	created   []entity.Bill
	activated []int64
	maxID     int64
}

func (b *fakeBilling) CreateBill(
	_ context.Context,
	clientID int64,
	billType entity.BillType,
	amount decimal.Decimal,
	vat int,
) (*entity.Bill, error) {
	b.maxID++
	bill := entity.Bill{
		ID:       b.maxID,
		ClientID: clientID,
		Type:     billType,
		Status:   entity.BillStatusNotActivated,
		Amount:   amount,
		VAT:      vat,
	}
	b.created = append(b.created, bill)

	return &bill, nil
}

func (b *fakeBilling) Activate(_ context.Context, billID int64) (*entity.Bill, error) {
	b.activated = append(b.activated, billID)

	return &entity.Bill{ID: billID, Status: entity.BillStatusActivated}, nil
}

func newService(repo *memPaymentRepo, billing *fakeBilling) *payment.Service {
	return payment.NewService(repo, memClientRepo{}, billing, paysystem.NewRegistry(paysystem.NewDummy()))
}

func TestCreatePayment(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := newMemPaymentRepo()
	svc := newService(repo, &fakeBilling{})

	p, err := svc.CreatePayment(ctx, 1, entity.PaymentSystemDummy, decimal.NewFromInt(100))
	rq.NoError(err)
	rq.Equal(entity.PaymentStatusNotPayed, p.Status)
	rq.NotEqual(uuid.Nil, p.OrderID)
	rq.True(p.Amount.IsZero())

	_, err = svc.CreatePayment(ctx, 1, entity.PaymentSystemKind("ghost"), decimal.NewFromInt(100))
	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.UnknownPaymentSystem, code)
}

// Успешная оплата через dummy: платёж оплачен на ожидаемую сумму,
// создан и сразу активирован счёт пополнения.
func TestProcessSuccess(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := newMemPaymentRepo()
	billing := &fakeBilling{}
	svc := newService(repo, billing)

	created, err := svc.CreatePayment(ctx, 1, entity.PaymentSystemDummy, decimal.NewFromInt(100))
	rq.NoError(err)

	processed, err := svc.Process(ctx, created.ID)
	rq.NoError(err)
	rq.Equal(entity.PaymentStatusPayed, processed.Status)
	rq.Equal("100", processed.Amount.String())
	rq.NotNil(processed.PayedDate)
	rq.NotEmpty(processed.Data, "raw gateway payload is kept")

	rq.Len(billing.created, 1)
	rq.Equal(entity.BillTypePrepay, billing.created[0].Type)
	rq.Equal("100", billing.created[0].Amount.String())
	rq.Equal(20, billing.created[0].VAT, "vat comes from the client company")
	rq.Equal([]int64{billing.created[0].ID}, billing.activated, "prepay bill is activated immediately")

	rq.NotNil(processed.BillID)
	rq.Equal(billing.created[0].ID, *processed.BillID)

	stored, err := repo.GetByID(ctx, created.ID)
	rq.NoError(err)
	rq.Equal(entity.PaymentStatusPayed, stored.Status)
}

// Сбой сохранения статуса не должен раздваивать зачисление: деньги
// двигаются только после зафиксированного payed, повторный коллбек
// доводит платёж до конца с единственным счётом пополнения.
func TestHandleCallbackRetryAfterUpdateFailure(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := newMemPaymentRepo()
	billing := &fakeBilling{}
	svc := newService(repo, billing)

	created, err := svc.CreatePayment(ctx, 1, entity.PaymentSystemDummy, decimal.NewFromInt(100))
	rq.NoError(err)

	repo.failNextUpdate = true

	_, err = svc.HandleCallback(ctx, created.OrderID, []byte(`{"status":"ok"}`))
	rq.Error(err)
	rq.Empty(billing.created, "money must not move before the payed status is stored")

	stored, err := repo.GetByID(ctx, created.ID)
	rq.NoError(err)
	rq.Equal(entity.PaymentStatusNotPayed, stored.Status)

	processed, err := svc.HandleCallback(ctx, created.OrderID, []byte(`{"status":"ok"}`))
	rq.NoError(err)
	rq.Equal(entity.PaymentStatusPayed, processed.Status)
	rq.Len(billing.created, 1, "retried callback must not mint a second prepay bill")
	rq.Len(billing.activated, 1)
	rq.NotNil(processed.BillID)

	// лишний коллбек об успехе — no-op
	again, err := svc.HandleCallback(ctx, created.OrderID, []byte(`{"status":"ok"}`))
	rq.NoError(err)
	rq.Equal(entity.PaymentStatusPayed, again.Status)
	rq.Len(billing.created, 1)
	rq.Len(billing.activated, 1)
}

func TestHandleCallback(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := newMemPaymentRepo()
	billing := &fakeBilling{}
	svc := newService(repo, billing)

	created, err := svc.CreatePayment(ctx, 1, entity.PaymentSystemDummy, decimal.NewFromInt(42))
	rq.NoError(err)

	processed, err := svc.HandleCallback(ctx, created.OrderID, []byte(`{"status":"ok"}`))
	rq.NoError(err)
	rq.Equal(entity.PaymentStatusPayed, processed.Status)
	rq.Len(billing.activated, 1)

	_, err = svc.HandleCallback(ctx, uuid.New(), nil)
	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.NotFound, code)
}
