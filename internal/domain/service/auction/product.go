package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"auction_market/internal/domain"
	"auction_market/pkg/errcodes"
	"auction_market/pkg/logx"

	"auction_market/internal/domain/entity"
)

const (
	EmailTypeNewProduct = "new"
	EmailTypeDealClosed = "deal"
)

// ProductInput — провалидированные данные нового товара. Личность
// продавца разрешена слоем запросов, ядро ей доверяет.
type ProductInput struct {
	SellerID    int64
	Name        string
	Description string
	StartPrice  decimal.Decimal
	BuyPrice    *decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
}

// ProductUpdateInput — частичное обновление. nil-поля не меняются.
type ProductUpdateInput struct {
	SellerID    int64
	ProductID   int64
	Name        *string
	Description *string
	StartPrice  *decimal.Decimal
	BuyPrice    *decimal.Decimal
	StartDate   *time.Time
	EndDate     *time.Time
}

// CreateProduct создаёт товар в статусе inactive и уведомляет продавца.
func (s *Service) CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error) {
	product := &entity.Product{
		SellerID:    input.SellerID,
		Name:        input.Name,
		Description: input.Description,
		StartPrice:  input.StartPrice,
		BuyPrice:    input.BuyPrice,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      entity.ProductStatusInactive,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("products.Create: %w", err)
	}

	// fire-and-forget: ошибка постановки письма не откатывает товар
	if err := s.scheduler.ScheduleEmail(ctx, EmailTypeNewProduct, product.ID); err != nil {
		logger(ctx).Error("schedule new product email", logx.Error(err))
	}

	return product, nil
}

// UpdateProduct меняет поля товара. Разрешено только продавцу.
func (s *Service) UpdateProduct(ctx context.Context, input ProductUpdateInput) (*entity.Product, error) {
	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("products.GetByID: %w", err)
	}

	if product.SellerID != input.SellerID {
		return nil, domain.NewError(errcodes.WrongUser, "product belongs to another seller")
	}

	changed := false

	if input.Name != nil {
		product.Name, changed = *input.Name, true
	}

	if input.Description != nil {
		product.Description, changed = *input.Description, true
	}

	if input.StartPrice != nil {
		product.StartPrice, changed = *input.StartPrice, true
	}

	if input.BuyPrice != nil {
		product.BuyPrice, changed = input.BuyPrice, true
	}

	if input.StartDate != nil {
		product.StartDate, changed = input.StartDate, true
	}

	if input.EndDate != nil {
		product.EndDate, changed = input.EndDate, true
	}

	if !changed {
		return nil, domain.NewError(errcodes.NoChangesSpecified, "no changes specified")
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("products.Update: %w", err)
	}

	return product, nil
}

// ActivateProduct запускает аукцион: товар становится active, на
// end_date ставится отложенная проверка закрытия.
func (s *Service) ActivateProduct(ctx context.Context, sellerID, productID int64) (*entity.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("products.GetByID: %w", err)
	}

	if product.SellerID != sellerID {
		return nil, domain.NewError(errcodes.WrongUser, "product belongs to another seller")
	}

	if err := product.Activate(); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("products.Update: %w", err)
	}

	// страховка от пропущенного закрытия по ставке
	if err := s.scheduler.ScheduleCloseAt(ctx, product.ID, *product.EndDate); err != nil {
		return nil, fmt.Errorf("scheduler.ScheduleCloseAt: %w", err)
	}

	logger(ctx).Info("product activated",
		"product_id", product.ID,
		"end_date", product.EndDate,
	)

	return product, nil
}

// DeleteProduct помечает товар удалённым.
func (s *Service) DeleteProduct(ctx context.Context, sellerID, productID int64) (*entity.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("products.GetByID: %w", err)
	}

	if product.SellerID != sellerID {
		return nil, domain.NewError(errcodes.WrongUser, "product belongs to another seller")
	}

	if err := product.MarkDeleted(); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("products.Update: %w", err)
	}

	return product, nil
}

// ListProductsBySeller — товары продавца, новые первыми.
func (s *Service) ListProductsBySeller(ctx context.Context, sellerID int64) ([]*entity.Product, error) {
	products, err := s.products.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("products.ListBySeller: %w", err)
	}

	return products, nil
}

// GetProduct возвращает товар.
func (s *Service) GetProduct(ctx context.Context, productID int64) (*entity.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("products.GetByID: %w", err)
	}

	return product, nil
}

func isNotFound(err error) bool {
	var appErr *domain.AppError

	return errors.As(err, &appErr) && appErr.Code == errcodes.NotFound
}

func isNotReadyToClose(err error) bool {
	var appErr *domain.AppError

	return errors.As(err, &appErr) && appErr.Code == errcodes.NotReadyToClose
}
