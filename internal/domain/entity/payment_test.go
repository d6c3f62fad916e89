package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/pkg/errcodes"
)

func TestPaymentSetPayed(t *testing.T) {
	rq := require.New(t)
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	amount := decimal.NewFromInt(100)

	t.Run("from not_payed", func(*testing.T) {
		payment := entity.Payment{Status: entity.PaymentStatusNotPayed}

		rq.NoError(payment.SetPayed(amount, now))
		rq.Equal(entity.PaymentStatusPayed, payment.Status)
		rq.True(amount.Equal(payment.Amount))
		rq.Equal(now, *payment.PayedDate)
	})

	t.Run("from pending", func(*testing.T) {
		payment := entity.Payment{Status: entity.PaymentStatusPending}
		rq.NoError(payment.SetPayed(amount, now))
	})

	t.Run("twice", func(*testing.T) {
		payment := entity.Payment{Status: entity.PaymentStatusNotPayed}
		rq.NoError(payment.SetPayed(amount, now))

		err := payment.SetPayed(amount, now)
		code, ok := domain.GetCode(err)
		rq.True(ok)
		rq.Equal(errcodes.WrongStatus, code)
	})

	t.Run("from failed", func(*testing.T) {
		payment := entity.Payment{Status: entity.PaymentStatusFailed}
		rq.Error(payment.SetPayed(amount, now))
	})
}

func TestPaymentSetCancelled(t *testing.T) {
	rq := require.New(t)

	payment := entity.Payment{Status: entity.PaymentStatusPending}
	rq.NoError(payment.SetCancelled())

	payed := entity.Payment{Status: entity.PaymentStatusPayed}
	rq.Error(payed.SetCancelled())
}
