package paysystem

import (
	"context"

	jsoniter "github.com/json-iterator/go"

	"auction_market/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Dummy — псевдо платёжная система: подтверждает оплату сразу, на всю
// ожидаемую сумму. Внешнего сервиса нет, коллбек вырождается в успех.
type Dummy struct{}

func NewDummy() Dummy {
	return Dummy{}
}

func (Dummy) Kind() entity.PaymentSystemKind {
	return entity.PaymentSystemDummy
}

func (Dummy) ProcessPayment(_ context.Context, payment *entity.Payment) (*Result, error) {
	payload, err := json.Marshal(map[string]string{
		"system":   string(entity.PaymentSystemDummy),
		"order_id": payment.OrderID.String(),
		"result":   "succeeded",
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Status:     StatusSucceeded,
		RawPayload: payload,
	}, nil
}

func (d Dummy) ProcessExternalCallback(ctx context.Context, payment *entity.Payment, _ []byte) (*Result, error) {
	return d.ProcessPayment(ctx, payment)
}
