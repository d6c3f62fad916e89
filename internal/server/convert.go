package server

import (
	"auction_market/internal/domain/entity"
	"auction_market/pkg/rest"
)

func newRESTProduct(product *entity.Product) rest.Product {
	var buyPrice *string
	if product.BuyPrice != nil {
		v := product.BuyPrice.StringFixed(2)
		buyPrice = &v
	}

	return rest.Product{
		ID:          product.ID,
		SellerID:    product.SellerID,
		Name:        product.Name,
		Description: product.Description,
		StartPrice:  product.StartPrice.StringFixed(2),
		BuyPrice:    buyPrice,
		StartDate:   product.StartDate,
		EndDate:     product.EndDate,
		Status:      string(product.Status),
		CreatedAt:   product.CreatedAt,
	}
}

func newRESTBid(bid entity.Bid) rest.Bid {
	return rest.Bid{
		ID:        bid.ID,
		ClientID:  bid.ClientID,
		ProductID: bid.ProductID,
		Price:     bid.Price.StringFixed(2),
		Status:    string(bid.Status),
		CreatedAt: bid.CreatedAt,
	}
}

func newRESTDeal(deal *entity.Deal) rest.Deal {
	return rest.Deal{
		ID:        deal.ID,
		ProductID: deal.ProductID,
		BuyerID:   deal.BuyerID,
		Amount:    deal.Amount.StringFixed(2),
		CreatedAt: deal.CreatedAt,
	}
}

func newRESTBill(bill entity.Bill) rest.Bill {
	return rest.Bill{
		ID:        bill.ID,
		ClientID:  bill.ClientID,
		BillType:  string(bill.Type),
		Status:    string(bill.Status),
		Amount:    bill.Amount.StringFixed(2),
		VAT:       bill.VAT,
		CreatedAt: bill.CreatedAt,
	}
}

func newRESTTransaction(txn entity.Transaction) rest.Transaction {
	return rest.Transaction{
		ID:        txn.ID,
		BillID:    txn.BillID,
		TnxType:   string(txn.Type),
		Amount:    txn.Amount.StringFixed(2),
		Comment:   txn.Comment,
		CreatedAt: txn.CreatedAt,
	}
}

func newRESTPayment(payment *entity.Payment) rest.Payment {
	return rest.Payment{
		ID:             payment.ID,
		OrderID:        payment.OrderID.String(),
		Status:         string(payment.Status),
		PaymentSystem:  string(payment.System),
		ExpectedAmount: payment.ExpectedAmount.StringFixed(2),
		Amount:         payment.Amount.StringFixed(2),
		PayedDate:      payment.PayedDate,
		BillID:         payment.BillID,
		CreatedAt:      payment.CreatedAt,
	}
}
