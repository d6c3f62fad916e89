package auction

import (
	"context"
	"errors"
	"fmt"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/pkg/errcodes"
	"auction_market/pkg/logx"
)

// IsReadyToMakeADeal проверяет множественные условия закрытия:
// товар активен, есть хоть одна ставка, выполнено условие по цене
// или по времени.
func (s *Service) IsReadyToMakeADeal(ctx context.Context, product *entity.Product) (bool, error) {
	if product.Status != entity.ProductStatusActive {
		return false, nil
	}

	winning, err := s.bids.GetWinning(ctx, product.ID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("bids.GetWinning: %w", err)
	}

	if product.IsBuyConditionMet(winning.Price) {
		return true, nil
	}

	return product.IsTimeConditionMet(s.now())
}

// MakeADeal закрывает аукцион: победившая ставка становится сделкой.
// Уникальность сделки на товар держит хранилище; гонка закрытия по
// ставке и по расписанию оставляет ровно одну сделку.
func (s *Service) MakeADeal(ctx context.Context, productID int64) (*entity.Deal, error) {
	winning, err := s.bids.GetWinning(ctx, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewError(errcodes.NoBidForDeal, "can not make a deal without bid and bidder")
		}

		return nil, fmt.Errorf("bids.GetWinning: %w", err)
	}

	deal := &entity.Deal{
		ProductID: productID,
		BuyerID:   winning.ClientID,
		Amount:    winning.Price,
	}

	if err := s.deals.Create(ctx, deal); err != nil {
		return nil, fmt.Errorf("deals.Create: %w", err)
	}

	logger(ctx).Info("deal created",
		"deal_id", deal.ID,
		"product_id", productID,
		"amount", deal.Amount.StringFixed(2),
	)

	return deal, nil
}

// TryClose — попытка закрытия: проверяем условия, создаём сделку и
// ставим финализацию в очередь. Вызывается из post-save хука ставки и
// из отложенной задачи на end_date.
//
// Если сделку успела создать параллельная попытка, это не ошибка:
// аукцион уже закрыт.
func (s *Service) TryClose(ctx context.Context, productID int64) error {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("products.GetByID: %w", err)
	}

	ready, err := s.IsReadyToMakeADeal(ctx, product)
	if err != nil {
		return err
	}

	if !ready {
		return domain.NewError(errcodes.NotReadyToClose, "closing conditions are not met")
	}

	deal, err := s.MakeADeal(ctx, productID)
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.Code == errcodes.DealAlreadyExists {
			logger(ctx).Info("product is already closed", "product_id", productID)
			return nil
		}

		return err
	}

	if err := s.scheduler.ScheduleFinalize(ctx, deal.ID); err != nil {
		return fmt.Errorf("scheduler.ScheduleFinalize: %w", err)
	}

	if err := s.scheduler.ScheduleEmail(ctx, EmailTypeDealClosed, productID); err != nil {
		logger(ctx).Error("schedule deal email", logx.Error(err))
	}

	return nil
}
