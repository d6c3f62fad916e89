package auction

import (
	"context"
	"fmt"

	"auction_market/internal/domain/entity"
	"auction_market/pkg/logx"
)

// Finalize превращает сделку в счета. Три счета в строгом порядке:
//
//	sell       — покупателю, на сумму сделки (-)
//	proceeds   — продавцу, на сумму сделки (+)
//	commission — продавцу, на комиссию площадки (-)
//
// НДС во всех трёх — ставка покупателя; комиссионный процент берётся
// из конфигурации компании продавца. Активация каждого счёта ставится
// в очередь независимо: частичная активация — восстановимое состояние,
// не фатальное.
func (s *Service) Finalize(ctx context.Context, dealID int64) error {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return fmt.Errorf("deals.GetByID: %w", err)
	}

	product, err := s.products.GetByID(ctx, deal.ProductID)
	if err != nil {
		return fmt.Errorf("products.GetByID: %w", err)
	}

	buyer, err := s.clients.GetByID(ctx, deal.BuyerID)
	if err != nil {
		return fmt.Errorf("clients.GetByID: %w", err)
	}

	seller, err := s.clients.GetByID(ctx, product.SellerID)
	if err != nil {
		return fmt.Errorf("clients.GetByID: %w", err)
	}

	buyerCompany, err := s.getCompany(ctx, buyer.CompanyID)
	if err != nil {
		return err
	}

	sellerCompany, err := s.getCompany(ctx, seller.CompanyID)
	if err != nil {
		return err
	}

	part := s.cfg.commissionPart(sellerCompany.ID)
	commission := deal.Commission(part, sellerCompany.VAT)

	sellBill, err := s.billing.CreateBill(ctx, buyer.ID, entity.BillTypeSell, deal.Amount, buyerCompany.VAT)
	if err != nil {
		return fmt.Errorf("create sell bill: %w", err)
	}

	proceedsBill, err := s.billing.CreateBill(ctx, seller.ID, entity.BillTypeProceeds, deal.Amount, buyerCompany.VAT)
	if err != nil {
		return fmt.Errorf("create proceeds bill: %w", err)
	}

	commissionBill, err := s.billing.CreateBill(ctx, seller.ID, entity.BillTypeCommission, commission, buyerCompany.VAT)
	if err != nil {
		return fmt.Errorf("create commission bill: %w", err)
	}

	for _, bill := range []*entity.Bill{sellBill, proceedsBill, commissionBill} {
		if err := s.deals.AttachBill(ctx, deal.ID, bill.ID); err != nil {
			return fmt.Errorf("deals.AttachBill: %w", err)
		}

		if err := s.scheduler.ScheduleBillActivation(ctx, bill.ID); err != nil {
			// активации независимы: не блокируем остальные счета
			logger(ctx).Error("schedule bill activation",
				"bill_id", bill.ID,
				logx.Error(err),
			)
		}
	}

	logger(ctx).Info("deal finalized",
		"deal_id", deal.ID,
		"amount", deal.Amount.StringFixed(2),
		"commission", commission.StringFixed(2),
	)

	return nil
}
