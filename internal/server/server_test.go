package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/internal/domain/service/auction"
	"auction_market/pkg/errcodes"
	"auction_market/pkg/rest"
	"auction_market/pkg/tests"
)

type stubAuction struct {
	product *entity.Product
}

func (s stubAuction) CreateProduct(_ context.Context, input auction.ProductInput) (*entity.Product, error) {
	product := *s.product
	product.Name = input.Name
	product.SellerID = input.SellerID

	return &product, nil
}

func (s stubAuction) UpdateProduct(_ context.Context, _ auction.ProductUpdateInput) (*entity.Product, error) {
	return s.product, nil
}

func (s stubAuction) ActivateProduct(_ context.Context, _, _ int64) (*entity.Product, error) {
	return s.product, nil
}

func (s stubAuction) DeleteProduct(_ context.Context, _, _ int64) (*entity.Product, error) {
	return s.product, nil
}

func (s stubAuction) ListProductsBySeller(_ context.Context, sellerID int64) ([]*entity.Product, error) {
	if sellerID != s.product.SellerID {
		return nil, nil
	}

	return []*entity.Product{s.product}, nil
}

func (s stubAuction) GetProduct(_ context.Context, productID int64) (*entity.Product, error) {
	if productID != s.product.ID {
		return nil, domain.NewError(errcodes.NotFound, "product not found")
	}

	return s.product, nil
}

func (s stubAuction) PlaceBid(_ context.Context, clientID, productID int64, price decimal.Decimal) (*entity.Bid, error) {
	if price.LessThanOrEqual(decimal.RequireFromString("12.34")) {
		return nil, domain.NewError(errcodes.AlreadyHasHigherBid, "a bid with an equal or higher price already exists")
	}

	return &entity.Bid{
		ID:        7,
		ClientID:  clientID,
		ProductID: productID,
		Price:     price,
		Status:    entity.BidStatusActive,
	}, nil
}

func (s stubAuction) ListBids(_ context.Context, productID int64) ([]entity.Bid, error) {
	return []entity.Bid{
		{ID: 7, ClientID: 2, ProductID: productID, Price: decimal.RequireFromString("12.34"), Status: entity.BidStatusActive},
	}, nil
}

func (s stubAuction) GetDealByProduct(_ context.Context, productID int64) (*entity.Deal, error) {
	return &entity.Deal{ID: 1, ProductID: productID, BuyerID: 2, Amount: decimal.NewFromInt(20)}, nil
}

type stubLedger struct{}

func (stubLedger) Balance(_ context.Context, _ int64) (decimal.Decimal, error) {
	return decimal.RequireFromString("75.00"), nil
}

func (stubLedger) History(_ context.Context, clientID int64) ([]entity.Transaction, error) {
	return []entity.Transaction{
		{ID: 1, ClientID: clientID, BillID: 3, Type: entity.TransactionTypeDeposit, Amount: decimal.NewFromInt(100)},
	}, nil
}

type stubBilling struct{}

func (stubBilling) ListByClient(_ context.Context, clientID int64) ([]entity.Bill, error) {
	return []entity.Bill{
		{ID: 3, ClientID: clientID, Type: entity.BillTypePrepay, Status: entity.BillStatusActivated, Amount: decimal.NewFromInt(100), VAT: 20},
	}, nil
}

type stubPayment struct{}

func (stubPayment) CreatePayment(_ context.Context, clientID int64, system entity.PaymentSystemKind, expectedAmount decimal.Decimal) (*entity.Payment, error) {
	return &entity.Payment{
		ID:             5,
		ClientID:       clientID,
		OrderID:        uuid.New(),
		Status:         entity.PaymentStatusNotPayed,
		System:         system,
		ExpectedAmount: expectedAmount,
		Amount:         decimal.Zero,
	}, nil
}

func (stubPayment) Process(_ context.Context, paymentID int64) (*entity.Payment, error) {
	return &entity.Payment{ID: paymentID, ClientID: 1, Status: entity.PaymentStatusPayed}, nil
}

func (stubPayment) HandleCallback(_ context.Context, orderID uuid.UUID, _ []byte) (*entity.Payment, error) {
	return &entity.Payment{ID: 5, ClientID: 1, OrderID: orderID, Status: entity.PaymentStatusPayed}, nil
}

func (stubPayment) GetByID(_ context.Context, paymentID int64) (*entity.Payment, error) {
	return &entity.Payment{ID: paymentID, ClientID: 1, Status: entity.PaymentStatusNotPayed}, nil
}

func (stubPayment) ListByClient(_ context.Context, clientID int64) ([]*entity.Payment, error) {
	return []*entity.Payment{
		{ID: 5, ClientID: clientID, OrderID: uuid.New(), Status: entity.PaymentStatusPayed, ExpectedAmount: decimal.NewFromInt(100), Amount: decimal.NewFromInt(100)},
	}, nil
}

func newTestAPI(t *testing.T) tests.APIClient {
	t.Helper()

	now := time.Now()
	end := now.Add(7 * 24 * time.Hour)

	srv := NewServer(
		NewAuctionServer(stubAuction{product: &entity.Product{
			ID:         1,
			SellerID:   1,
			Name:       "vintage clock",
			StartPrice: decimal.NewFromInt(10),
			StartDate:  &now,
			EndDate:    &end,
			Status:     entity.ProductStatusActive,
		}}),
		NewBillingServer(stubLedger{}, stubBilling{}),
		NewPaymentServer(stubPayment{}),
	)

	router := chi.NewRouter()
	srv.RegisterRoutes(router)

	httpServer := httptest.NewServer(router)
	t.Cleanup(httpServer.Close)

	return tests.NewAPIClient(httpServer.URL, httpServer.Client())
}

func authHeaders(clientID string) http.Header {
	h := http.Header{}
	h.Set("X-Client-Id", clientID)

	return h
}

func TestBalanceRequiresClientID(t *testing.T) {
	r := require.New(t)
	api := newTestAPI(t)

	var errBody rest.Error

	resp, err := api.Get(context.Background(), "/v1/billing/balance", http.Header{}, nil, &errBody)
	r.NoError(err)
	r.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func TestBalance(t *testing.T) {
	r := require.New(t)
	api := newTestAPI(t)

	var balance rest.Balance

	resp, err := api.Get(context.Background(), "/v1/billing/balance", authHeaders("1"), &balance, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal(int64(1), balance.ClientID)
	r.Equal("75.00", balance.Balance)
}

func TestGetProduct(t *testing.T) {
	r := require.New(t)
	api := newTestAPI(t)

	var product rest.Product

	resp, err := api.Get(context.Background(), "/v1/products/1", http.Header{}, &product, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal("vintage clock", product.Name)
	r.Equal("10.00", product.StartPrice)
}

func TestGetProductNotFound(t *testing.T) {
	r := require.New(t)
	api := newTestAPI(t)

	var errBody rest.Error

	resp, err := api.Get(context.Background(), "/v1/products/999", http.Header{}, nil, &errBody)
	r.NoError(err)
	r.Equal(http.StatusNotFound, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.NotFound), errBody.Code)
}

func TestGetProductInvalidID(t *testing.T) {
	r := require.New(t)
	api := newTestAPI(t)

	var errBody rest.Error

	resp, err := api.Get(context.Background(), "/v1/products/abc", http.Header{}, nil, &errBody)
	r.NoError(err)
	r.Equal(http.StatusBadRequest, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.ValidationError), errBody.Code)
}

func TestPlaceBid(t *testing.T) {
	r := require.New(t)
	api := newTestAPI(t)

	var bid rest.Bid

	resp, err := api.Post(context.Background(), "/v1/products/1/bids", authHeaders("2"),
		rest.PlaceBidRequest{Price: "13.34"}, &bid, nil)
	r.NoError(err)
	r.Equal(http.StatusCreated, resp.StatusCode)
	r.Equal("13.34", bid.Price)
	r.Equal(int64(2), bid.ClientID)
}

func TestPlaceBidRejected(t *testing.T) {
	r := require.New(t)
	api := newTestAPI(t)

	var errBody rest.Error

	resp, err := api.Post(context.Background(), "/v1/products/1/bids", authHeaders("2"),
		rest.PlaceBidRequest{Price: "12.00"}, nil, &errBody)
	r.NoError(err)
	r.Equal(http.StatusConflict, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.AlreadyHasHigherBid), errBody.Code)
}

func TestCreateProductValidation(t *testing.T) {
	r := require.New(t)
	api := newTestAPI(t)

	var errBody rest.Error

	resp, err := api.Post(context.Background(), "/v1/products", authHeaders("1"),
		rest.CreateProductRequest{Description: "no name"}, nil, &errBody)
	r.NoError(err)
	r.Equal(http.StatusBadRequest, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.ValidationError), errBody.Code)
}

func TestListProducts(t *testing.T) {
	r := require.New(t)
	api := newTestAPI(t)

	var products []rest.Product

	resp, err := api.Get(context.Background(), "/v1/products", authHeaders("1"), &products, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Len(products, 1)
	r.Equal("vintage clock", products[0].Name)

	resp, err = api.Get(context.Background(), "/v1/products", authHeaders("99"), &products, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Empty(products)
}

func TestListPayments(t *testing.T) {
	r := require.New(t)
	api := newTestAPI(t)

	var payments []rest.Payment

	resp, err := api.Get(context.Background(), "/v1/payments", authHeaders("1"), &payments, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Len(payments, 1)
	r.Equal("payed", payments[0].Status)
}

func TestCreatePayment(t *testing.T) {
	r := require.New(t)
	api := newTestAPI(t)

	var payment rest.Payment

	resp, err := api.Post(context.Background(), "/v1/payments", authHeaders("1"),
		rest.CreatePaymentRequest{PaymentSystem: "dummy", Amount: "100.00"}, &payment, nil)
	r.NoError(err)
	r.Equal(http.StatusCreated, resp.StatusCode)
	r.Equal("not_payed", payment.Status)
	r.Equal("100.00", payment.ExpectedAmount)
}
