package worker

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/pkg/errcodes"
)

func TestIsBusinessError(t *testing.T) {
	rq := require.New(t)

	rq.False(isBusinessError(errors.New("dial tcp: refused")))
	rq.False(isBusinessError(domain.NewError(errcodes.InternalServerError, "db down")))
	rq.True(isBusinessError(domain.NewError(errcodes.NoBidForDeal, "no bids")))
	rq.True(isBusinessError(domain.NewError(errcodes.WrongStatus, "already activated")))
}

func TestHasCode(t *testing.T) {
	rq := require.New(t)

	err := domain.NewError(errcodes.NotReadyToClose, "not yet")
	rq.True(hasCode(err, errcodes.NotReadyToClose))
	rq.False(hasCode(err, errcodes.WrongStatus))
	rq.False(hasCode(errors.New("plain"), errcodes.NotReadyToClose))
}

func TestComposeEmail(t *testing.T) {
	rq := require.New(t)

	product := &entity.Product{ID: 7, Name: "lot", StartPrice: decimal.NewFromInt(10)}

	subject, body := composeEmail("deal", product)
	rq.Contains(subject, "closed")
	rq.Contains(body, "#7")

	subject, _ = composeEmail("new", product)
	rq.Contains(subject, "New product")
}
