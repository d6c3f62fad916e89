package server

// Сервер объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей.
type Server struct {
	AuctionServer
	BillingServer
	PaymentServer
}

func NewServer(
	auctionServer AuctionServer,
	billingServer BillingServer,
	paymentServer PaymentServer,
) Server {
	return Server{
		AuctionServer: auctionServer,
		BillingServer: billingServer,
		PaymentServer: paymentServer,
	}
}
