package paysystem

import (
	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/pkg/errcodes"
)

// Registry выбирает стратегию по идентификатору платёжной системы.
type Registry struct {
	gateways map[entity.PaymentSystemKind]Gateway
}

func NewRegistry(gateways ...Gateway) *Registry {
	byKind := make(map[entity.PaymentSystemKind]Gateway, len(gateways))

	for _, g := range gateways {
		byKind[g.Kind()] = g
	}

	return &Registry{gateways: byKind}
}

func (r *Registry) Get(kind entity.PaymentSystemKind) (Gateway, error) {
	gateway, ok := r.gateways[kind]
	if !ok {
		return nil, domain.NewError(errcodes.UnknownPaymentSystem, "unknown payment system "+string(kind))
	}

	return gateway, nil
}
