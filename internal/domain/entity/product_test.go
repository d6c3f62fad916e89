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

func validProduct() *entity.Product {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	return &entity.Product{
		SellerID:   1,
		Name:       "lot",
		StartPrice: decimal.NewFromInt(10),
		StartDate:  &start,
		EndDate:    &end,
		Status:     entity.ProductStatusInactive,
	}
}

func TestProductValidate(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		mutate  func(p *entity.Product)
		wantErr bool
	}{
		{
			name:   "valid inactive",
			mutate: func(*entity.Product) {},
		},
		{
			name:    "empty name",
			mutate:  func(p *entity.Product) { p.Name = "" },
			wantErr: true,
		},
		{
			name:    "zero start price",
			mutate:  func(p *entity.Product) { p.StartPrice = decimal.Zero },
			wantErr: true,
		},
		{
			name: "buy price below start price",
			mutate: func(p *entity.Product) {
				buy := decimal.NewFromInt(5)
				p.BuyPrice = &buy
			},
			wantErr: true,
		},
		{
			name: "buy price equal to start price",
			mutate: func(p *entity.Product) {
				buy := p.StartPrice
				p.BuyPrice = &buy
			},
			wantErr: true,
		},
		{
			name: "buy price above start price",
			mutate: func(p *entity.Product) {
				buy := decimal.NewFromInt(100)
				p.BuyPrice = &buy
			},
		},
		{
			name: "active without dates",
			mutate: func(p *entity.Product) {
				p.Status = entity.ProductStatusActive
				p.StartDate = nil
				p.EndDate = nil
			},
			wantErr: true,
		},
		{
			name: "inactive without dates",
			mutate: func(p *entity.Product) {
				p.StartDate = nil
				p.EndDate = nil
			},
		},
		{
			name: "end date before start date",
			mutate: func(p *entity.Product) {
				p.Status = entity.ProductStatusActive
				end := p.StartDate.Add(-time.Hour)
				p.EndDate = &end
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			product := validProduct()
			tc.mutate(product)

			err := product.Validate()
			if tc.wantErr {
				rq.Error(err)
				code, ok := domain.GetCode(err)
				rq.True(ok)
				rq.Equal(errcodes.ValidationError, code)
			} else {
				rq.NoError(err)
			}
		})
	}
}

func TestProductActivate(t *testing.T) {
	rq := require.New(t)

	product := validProduct()

	rq.NoError(product.Activate())
	rq.Equal(entity.ProductStatusActive, product.Status)

	err := product.Activate()
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.AlreadyActivated, code)
}

func TestProductMarkDeleted(t *testing.T) {
	rq := require.New(t)

	t.Run("from inactive", func(*testing.T) {
		product := validProduct()
		rq.NoError(product.MarkDeleted())
		rq.Equal(entity.ProductStatusDeleted, product.Status)
	})

	t.Run("twice", func(*testing.T) {
		product := validProduct()
		rq.NoError(product.MarkDeleted())

		err := product.MarkDeleted()
		code, ok := domain.GetCode(err)
		rq.True(ok)
		rq.Equal(errcodes.AlreadyDeleted, code)
	})

	t.Run("sold product", func(*testing.T) {
		product := validProduct()
		product.Status = entity.ProductStatusSold

		err := product.MarkDeleted()
		code, ok := domain.GetCode(err)
		rq.True(ok)
		rq.Equal(errcodes.AlreadySolded, code)
	})
}

func TestProductBuyCondition(t *testing.T) {
	rq := require.New(t)

	product := validProduct()
	rq.False(product.IsBuyConditionMet(decimal.NewFromInt(1000)), "no buy price, condition unreachable")

	buy := decimal.NewFromInt(50)
	product.BuyPrice = &buy

	rq.False(product.IsBuyConditionMet(decimal.NewFromInt(49)))
	rq.True(product.IsBuyConditionMet(decimal.NewFromInt(50)))
	rq.True(product.IsBuyConditionMet(decimal.NewFromInt(51)))
}

func TestProductTimeCondition(t *testing.T) {
	rq := require.New(t)

	product := validProduct()
	end := *product.EndDate

	met, err := product.IsTimeConditionMet(end.Add(-time.Second))
	rq.NoError(err)
	rq.False(met)

	met, err = product.IsTimeConditionMet(end)
	rq.NoError(err)
	rq.True(met)

	met, err = product.IsTimeConditionMet(end.Add(time.Second))
	rq.NoError(err)
	rq.True(met)

	product.EndDate = nil
	_, err = product.IsTimeConditionMet(end)
	rq.Error(err)
}
