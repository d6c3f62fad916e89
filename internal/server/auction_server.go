package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"auction_market/internal/domain/entity"
	"auction_market/internal/domain/service/auction"
	"auction_market/pkg/httpx/reply"
	"auction_market/pkg/httpx/req"
	"auction_market/pkg/lox"
	"auction_market/pkg/rest"
)

type auctionService interface {
	CreateProduct(ctx context.Context, input auction.ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, input auction.ProductUpdateInput) (*entity.Product, error)
	ActivateProduct(ctx context.Context, sellerID, productID int64) (*entity.Product, error)
	DeleteProduct(ctx context.Context, sellerID, productID int64) (*entity.Product, error)
	GetProduct(ctx context.Context, productID int64) (*entity.Product, error)
	ListProductsBySeller(ctx context.Context, sellerID int64) ([]*entity.Product, error)
	PlaceBid(ctx context.Context, clientID, productID int64, price decimal.Decimal) (*entity.Bid, error)
	ListBids(ctx context.Context, productID int64) ([]entity.Bid, error)
	GetDealByProduct(ctx context.Context, productID int64) (*entity.Deal, error)
}

type AuctionServer struct {
	auctionService auctionService
}

func NewAuctionServer(auctionService auctionService) AuctionServer {
	return AuctionServer{
		auctionService: auctionService,
	}
}

func (s AuctionServer) postV1Product(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sellerID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	var request rest.CreateProductRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	startPrice, err := parseAmount(request.StartPrice)
	if err != nil {
		return err
	}

	buyPrice, err := parseOptionalAmount(request.BuyPrice)
	if err != nil {
		return err
	}

	product, err := s.auctionService.CreateProduct(ctx, auction.ProductInput{
		SellerID:    sellerID,
		Name:        request.Name,
		Description: request.Description,
		StartPrice:  startPrice,
		BuyPrice:    buyPrice,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
	})
	if err != nil {
		return fmt.Errorf("auctionService.CreateProduct: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTProduct(product))

	return nil
}

func (s AuctionServer) getV1Products(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sellerID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	products, err := s.auctionService.ListProductsBySeller(ctx, sellerID)
	if err != nil {
		return fmt.Errorf("auctionService.ListProductsBySeller: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(products, newRESTProduct))

	return nil
}

func (s AuctionServer) getV1Product(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	productID, err := pathID(r, "id")
	if err != nil {
		return err
	}

	product, err := s.auctionService.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("auctionService.GetProduct: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTProduct(product))

	return nil
}

func (s AuctionServer) patchV1Product(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sellerID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	productID, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var request rest.UpdateProductRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	startPrice, err := parseOptionalAmount(request.StartPrice)
	if err != nil {
		return err
	}

	buyPrice, err := parseOptionalAmount(request.BuyPrice)
	if err != nil {
		return err
	}

	product, err := s.auctionService.UpdateProduct(ctx, auction.ProductUpdateInput{
		SellerID:    sellerID,
		ProductID:   productID,
		Name:        request.Name,
		Description: request.Description,
		StartPrice:  startPrice,
		BuyPrice:    buyPrice,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
	})
	if err != nil {
		return fmt.Errorf("auctionService.UpdateProduct: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTProduct(product))

	return nil
}

func (s AuctionServer) postV1ProductActivate(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sellerID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	productID, err := pathID(r, "id")
	if err != nil {
		return err
	}

	product, err := s.auctionService.ActivateProduct(ctx, sellerID, productID)
	if err != nil {
		return fmt.Errorf("auctionService.ActivateProduct: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTProduct(product))

	return nil
}

func (s AuctionServer) deleteV1Product(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sellerID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	productID, err := pathID(r, "id")
	if err != nil {
		return err
	}

	product, err := s.auctionService.DeleteProduct(ctx, sellerID, productID)
	if err != nil {
		return fmt.Errorf("auctionService.DeleteProduct: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTProduct(product))

	return nil
}

func (s AuctionServer) postV1ProductBid(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	clientID, err := clientIDFromRequest(r)
	if err != nil {
		return err
	}

	productID, err := pathID(r, "id")
	if err != nil {
		return err
	}

	var request rest.PlaceBidRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	price, err := parseAmount(request.Price)
	if err != nil {
		return err
	}

	bid, err := s.auctionService.PlaceBid(ctx, clientID, productID, price)
	if err != nil {
		return fmt.Errorf("auctionService.PlaceBid: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTBid(*bid))

	return nil
}

func (s AuctionServer) getV1ProductBids(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	productID, err := pathID(r, "id")
	if err != nil {
		return err
	}

	bids, err := s.auctionService.ListBids(ctx, productID)
	if err != nil {
		return fmt.Errorf("auctionService.ListBids: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(bids, newRESTBid))

	return nil
}

func (s AuctionServer) getV1ProductDeal(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	productID, err := pathID(r, "id")
	if err != nil {
		return err
	}

	deal, err := s.auctionService.GetDealByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("auctionService.GetDealByProduct: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTDeal(deal))

	return nil
}
