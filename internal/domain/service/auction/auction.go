package auction

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"auction_market/internal/domain"
	"auction_market/internal/domain/entity"
	"auction_market/pkg/contextx"
	"auction_market/pkg/errcodes"
	"auction_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const companyCacheTTL = 5 * time.Minute

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListBySeller(ctx context.Context, sellerID int64) ([]*entity.Product, error)
}

// BidRepository сериализует приём ставок: Create выполняется под
// блокировкой строки товара и отклоняет ставку, если уже есть ставка
// с ценой не ниже новой (AlreadyHasHigherBid).
type BidRepository interface {
	Create(ctx context.Context, bid *entity.Bid) error
	GetWinning(ctx context.Context, productID int64) (*entity.Bid, error)
	ListByProduct(ctx context.Context, productID int64) ([]entity.Bid, error)
}

// DealRepository обязан обеспечивать уникальность сделки на товар:
// повторная вставка для того же товара — DealAlreadyExists.
type DealRepository interface {
	Create(ctx context.Context, deal *entity.Deal) error
	GetByID(ctx context.Context, id int64) (*entity.Deal, error)
	GetByProductID(ctx context.Context, productID int64) (*entity.Deal, error)
	AttachBill(ctx context.Context, dealID, billID int64) error
}

type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	GetCompany(ctx context.Context, companyID int64) (*entity.Company, error)
}

// Billing — создание счетов при финализации сделки.
type Billing interface {
	CreateBill(ctx context.Context, clientID int64, billType entity.BillType, amount decimal.Decimal, vat int) (*entity.Bill, error)
}

// Scheduler ставит отложенную и фоновую работу в очередь. Семантика
// только enqueue: завершение задач сервис не наблюдает.
type Scheduler interface {
	ScheduleCloseAt(ctx context.Context, productID int64, eta time.Time) error
	ScheduleFinalize(ctx context.Context, dealID int64) error
	ScheduleBillActivation(ctx context.Context, billID int64) error
	ScheduleEmail(ctx context.Context, emailType string, productID int64) error
}

// Config — комиссионные проценты площадки по компаниям.
type Config struct {
	DefaultCommissionPart int
	CommissionParts       map[int64]int // переопределения по id компании
}

func (c Config) commissionPart(companyID int64) int {
	if part, ok := c.CommissionParts[companyID]; ok {
		return part
	}

	return c.DefaultCommissionPart
}

// Service — ядро аукциона: жизненный цикл товара, приём ставок,
// решение о закрытии и финализация сделки.
type Service struct {
	products  ProductRepository
	bids      BidRepository
	deals     DealRepository
	clients   ClientRepository
	billing   Billing
	scheduler Scheduler
	cfg       Config

	now func() time.Time

	// Компании меняются редко, финализация дергает их на каждую сделку.
	companyCache *cache.Cache
}

func NewService(
	products ProductRepository,
	bids BidRepository,
	deals DealRepository,
	clients ClientRepository,
	billing Billing,
	scheduler Scheduler,
	cfg Config,
) *Service {
	return &Service{
		products:     products,
		bids:         bids,
		deals:        deals,
		clients:      clients,
		billing:      billing,
		scheduler:    scheduler,
		cfg:          cfg,
		now:          time.Now,
		companyCache: cache.New(companyCacheTTL, companyCacheTTL),
	}
}

// WithClock подменяет источник времени. Для тестов условий закрытия.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// PlaceBid принимает новую ставку. Правило приёма применяется в
// хранилище под блокировкой строки товара; после успешного сохранения
// запускается проверка закрытия, её ошибки логируются и не
// откатывают ставку.
func (s *Service) PlaceBid(ctx context.Context, clientID, productID int64, price decimal.Decimal) (*entity.Bid, error) {
	if !price.IsPositive() {
		return nil, domain.NewError(errcodes.InvalidAmount, "bid price should be positive")
	}

	bid := &entity.Bid{
		ClientID:  clientID,
		ProductID: productID,
		Price:     price,
		Status:    entity.BidStatusActive,
	}

	if err := s.bids.Create(ctx, bid); err != nil {
		return nil, fmt.Errorf("bids.Create: %w", err)
	}

	// post-save hook
	if err := s.TryClose(ctx, productID); err != nil && !isNotReadyToClose(err) {
		logger(ctx).Error("bid posthook: close attempt failed",
			"product_id", productID,
			logx.Error(err),
		)
	}

	return bid, nil
}

// GetWinningBid — максимальная ставка товара. Ставки строго растут,
// так что дубль цены невозможен; на случай гонки хранилище разрешает
// ничью в пользу меньшего id.
func (s *Service) GetWinningBid(ctx context.Context, productID int64) (*entity.Bid, error) {
	bid, err := s.bids.GetWinning(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("bids.GetWinning: %w", err)
	}

	return bid, nil
}

// ListBids — все ставки товара, дорогие первыми.
func (s *Service) ListBids(ctx context.Context, productID int64) ([]entity.Bid, error) {
	bids, err := s.bids.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("bids.ListByProduct: %w", err)
	}

	return bids, nil
}

// GetDealByProduct возвращает сделку закрытого аукциона.
func (s *Service) GetDealByProduct(ctx context.Context, productID int64) (*entity.Deal, error) {
	deal, err := s.deals.GetByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("deals.GetByProductID: %w", err)
	}

	return deal, nil
}

func (s *Service) getCompany(ctx context.Context, companyID int64) (*entity.Company, error) {
	key := fmt.Sprintf("company:%d", companyID)

	if cached, ok := s.companyCache.Get(key); ok {
		if company, ok := cached.(*entity.Company); ok {
			return company, nil
		}
	}

	company, err := s.clients.GetCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("clients.GetCompany: %w", err)
	}

	s.companyCache.Set(key, company, cache.DefaultExpiration)

	return company, nil
}
