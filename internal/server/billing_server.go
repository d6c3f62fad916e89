package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"auction_market/internal/domain/entity"
	"auction_market/pkg/httpx/reply"
	"auction_market/pkg/lox"
	"auction_market/pkg/rest"
)

type ledgerService interface {
	Balance(ctx context.Context, clientID int64) (decimal.Decimal, error)
	History(ctx context.Context, clientID int64) ([]entity.Transaction, error)
}

type billingService interface {
	ListByClient(ctx context.Context, clientID int64) ([]entity.Bill, error)
}

type BillingServer struct {
	ledgerService  ledgerService
	billingService billingService
}

func NewBillingServer(ledgerService ledgerService, billingService billingService) BillingServer {
	return BillingServer{
		ledgerService:  ledgerService,
		billingService: billingService,
	}
}

func (s BillingServer) getV1Balance(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	clientID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	balance, err := s.ledgerService.Balance(ctx, clientID)
	if err != nil {
		return fmt.Errorf("ledgerService.Balance: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Balance{
		ClientID: clientID,
		Balance:  balance.StringFixed(2),
	})

	return nil
}

func (s BillingServer) getV1Transactions(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	clientID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	txns, err := s.ledgerService.History(ctx, clientID)
	if err != nil {
		return fmt.Errorf("ledgerService.History: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(txns, newRESTTransaction))

	return nil
}

func (s BillingServer) getV1Bills(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	clientID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	bills, err := s.billingService.ListByClient(ctx, clientID)
	if err != nil {
		return fmt.Errorf("billingService.ListByClient: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(bills, newRESTBill))

	return nil
}
