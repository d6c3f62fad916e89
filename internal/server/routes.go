package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"auction_market/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/products", func(r chi.Router) {
				r.Post("/", handler(s.postV1Product))
				r.Get("/", handler(s.getV1Products))
				r.Get("/{id}", handler(s.getV1Product))
				r.Patch("/{id}", handler(s.patchV1Product))
				r.Delete("/{id}", handler(s.deleteV1Product))
				r.Post("/{id}/activate", handler(s.postV1ProductActivate))
				r.Post("/{id}/bids", handler(s.postV1ProductBid))
				r.Get("/{id}/bids", handler(s.getV1ProductBids))
				r.Get("/{id}/deal", handler(s.getV1ProductDeal))
			})

			r.Route("/billing", func(r chi.Router) {
				r.Get("/balance", handler(s.getV1Balance))
				r.Get("/transactions", handler(s.getV1Transactions))
				r.Get("/bills", handler(s.getV1Bills))
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/", handler(s.postV1Payment))
				r.Get("/", handler(s.getV1Payments))
				r.Get("/{id}", handler(s.getV1Payment))
				r.Post("/{id}/process", handler(s.postV1PaymentProcess))
			})

			// unauthorized zone: сюда стучатся платёжные системы
			r.Post("/callbacks/payments/{orderID}", handler(s.postV1PaymentCallback))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, toFailure(err))
		}
	}
}
