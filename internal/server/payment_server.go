package server

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"auction_market/internal/domain/entity"
	"auction_market/pkg/errcodes"
	"auction_market/pkg/httpx/reply"
	"auction_market/pkg/httpx/req"
	"auction_market/pkg/lox"
	"auction_market/pkg/rest"
)

type paymentService interface {
	CreatePayment(ctx context.Context, clientID int64, system entity.PaymentSystemKind, expectedAmount decimal.Decimal) (*entity.Payment, error)
	Process(ctx context.Context, paymentID int64) (*entity.Payment, error)
	HandleCallback(ctx context.Context, orderID uuid.UUID, payload []byte) (*entity.Payment, error)
	GetByID(ctx context.Context, paymentID int64) (*entity.Payment, error)
	ListByClient(ctx context.Context, clientID int64) ([]*entity.Payment, error)
}

type PaymentServer struct {
	paymentService paymentService
}

func NewPaymentServer(paymentService paymentService) PaymentServer {
	return PaymentServer{
		paymentService: paymentService,
	}
}

func (s PaymentServer) postV1Payment(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	clientID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	var request rest.CreatePaymentRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	amount, err := parseAmount(request.Amount)
	if err != nil {
		return err
	}

	payment, err := s.paymentService.CreatePayment(ctx, clientID,
		entity.PaymentSystemKind(request.PaymentSystem), amount)
	if err != nil {
		return fmt.Errorf("paymentService.CreatePayment: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTPayment(payment))

	return nil
}

func (s PaymentServer) getV1Payments(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	clientID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	payments, err := s.paymentService.ListByClient(ctx, clientID)
	if err != nil {
		return fmt.Errorf("paymentService.ListByClient: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(payments, newRESTPayment))

	return nil
}

func (s PaymentServer) getV1Payment(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	clientID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	paymentID, err := pathID(r, "id")
	if err != nil {
		return err
	}

	payment, err := s.paymentService.GetByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("paymentService.GetByID: %w", err)
	}

	if payment.ClientID != clientID {
		return failure.NewForbiddenError(
			"payment belongs to another client",
			failure.WithCode(errcodes.WrongUser),
		)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPayment(payment))

	return nil
}

func (s PaymentServer) postV1PaymentProcess(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	clientID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	paymentID, err := pathID(r, "id")
	if err != nil {
		return err
	}

	payment, err := s.paymentService.GetByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("paymentService.GetByID: %w", err)
	}

	if payment.ClientID != clientID {
		return failure.NewForbiddenError(
			"payment belongs to another client",
			failure.WithCode(errcodes.WrongUser),
		)
	}

	payment, err = s.paymentService.Process(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("paymentService.Process: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTPayment(payment))

	return nil
}

// postV1PaymentCallback — входная точка платёжных систем. Тело не
// разбирается, сырой payload уходит в шлюз платежа.
func (s PaymentServer) postV1PaymentCallback(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	orderID, err := uuid.Parse(r.PathValue("orderID"))
	if err != nil {
		return failure.NewInvalidArgumentError(
			"invalid order id",
			failure.WithCode(errcodes.ValidationError),
		)
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if _, err := s.paymentService.HandleCallback(ctx, orderID, payload); err != nil {
		return fmt.Errorf("paymentService.HandleCallback: %w", err)
	}

	reply.OK(w)

	return nil
}
