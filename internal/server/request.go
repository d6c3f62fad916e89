package server

import (
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"
	"github.com/shopspring/decimal"

	"auction_market/pkg/errcodes"
)

// Аутентификация вынесена на шлюз: сюда запросы приходят уже
// проверенными, идентификатор клиента — в заголовке.
const clientIDHeader = "X-Client-Id"

func clientIDFromRequest(r *http.Request) (int64, error) {
	raw := r.Header.Get(clientIDHeader)
	if raw == "" {
		return 0, failure.NewUnauthorizedError(
			"missing client id",
			failure.WithDescription("missing "+clientIDHeader+" header"),
		)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, failure.NewUnauthorizedError(
			"invalid client id",
			failure.WithDescription("invalid "+clientIDHeader+" header"),
		)
	}

	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, failure.NewInvalidArgumentError(
			"invalid path parameter "+name,
			failure.WithCode(errcodes.ValidationError),
		)
	}

	return id, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, failure.NewInvalidArgumentError(
			"invalid decimal amount",
			failure.WithCode(errcodes.InvalidAmount),
			failure.WithDescription(err.Error()),
		)
	}

	return amount, nil
}

func parseOptionalAmount(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}

	amount, err := parseAmount(*raw)
	if err != nil {
		return nil, err
	}

	return &amount, nil
}
