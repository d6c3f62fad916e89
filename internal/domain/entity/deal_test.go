package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction_market/internal/domain/entity"
)

func TestDealCommission(t *testing.T) {
	rq := require.New(t)

	deal := entity.Deal{Amount: decimal.NewFromInt(20)}

	commission := deal.Commission(10, 20)
	proceeds := deal.Proceeds(10, 20)

	rq.Equal("6.00", commission.StringFixed(2))
	rq.Equal("14.00", proceeds.StringFixed(2))
}

func TestDealCommissionAndProceedsSumToAmount(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		amount string
		part   int
		vat    int
	}{
		{amount: "20", part: 10, vat: 20},
		{amount: "0.01", part: 10, vat: 20},
		{amount: "99.99", part: 7, vat: 13},
		{amount: "123456.78", part: 0, vat: 0},
	}

	for _, tc := range testCases {
		deal := entity.Deal{Amount: decimal.RequireFromString(tc.amount)}

		sum := deal.Commission(tc.part, tc.vat).Add(deal.Proceeds(tc.part, tc.vat))
		rq.True(deal.Amount.Equal(sum), "amount=%s part=%d vat=%d", tc.amount, tc.part, tc.vat)
	}
}
