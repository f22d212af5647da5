package service

import (
	"context"
	"errors"

	"tradex/internal/api/dto"
	"tradex/internal/api/repository"
	"tradex/internal/entity"
	"tradex/pkg/logger"
)

// PricingService resolves prices from the observation catalog.
type PricingService interface {
	GetAllStocks(ctx context.Context) ([]dto.StockResponse, error)
	GetPriceHistory(ctx context.Context, name string) ([]dto.PricePoint, error)
	// LatestPrice resolves the most recent observation for an exact name,
	// reading through the materialized price index.
	LatestPrice(ctx context.Context, name string) (*entity.Stock, error)
}

// NewPricingService creates a new pricing service.
func NewPricingService(stockRepo repository.StockRepository, priceCache repository.PriceCache, logger *logger.Logger) PricingService {
	return &pricingService{
		stockRepo:  stockRepo,
		priceCache: priceCache,
		logger:     logger,
	}
}

type pricingService struct {
	stockRepo  repository.StockRepository
	priceCache repository.PriceCache
	logger     *logger.Logger
}

// GetAllStocks retrieves every observation, newest first.
func (s *pricingService) GetAllStocks(ctx context.Context) ([]dto.StockResponse, error) {
	stocks, err := s.stockRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.StockResponse, 0, len(stocks))
	for _, stock := range stocks {
		responses = append(responses, dto.StockResponse{
			ID:        stock.ID,
			Name:      stock.Name,
			Price:     stock.Price,
			CreatedAt: stock.CreatedAt,
		})
	}
	return responses, nil
}

// GetPriceHistory retrieves the (price, observed_at) sequence for a name,
// chronological ascending.
func (s *pricingService) GetPriceHistory(ctx context.Context, name string) ([]dto.PricePoint, error) {
	stocks, err := s.stockRepo.FindHistory(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(stocks) == 0 {
		return nil, ErrPriceUnavailable
	}

	points := make([]dto.PricePoint, 0, len(stocks))
	for _, stock := range stocks {
		points = append(points, dto.PricePoint{
			Price:      stock.Price,
			ObservedAt: stock.CreatedAt,
		})
	}
	return points, nil
}

// LatestPrice checks the price index first and falls back to a catalog
// scan on miss, repopulating the index. Cache failures degrade to the
// catalog scan.
func (s *pricingService) LatestPrice(ctx context.Context, name string) (*entity.Stock, error) {
	cached, err := s.priceCache.GetLatest(ctx, name)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("Price cache lookup failed", logger.ErrorField(err), logger.Field("stock", name))
	}

	latest, err := s.stockRepo.FindLatest(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPriceUnavailable
	}
	if err != nil {
		return nil, err
	}

	if err := s.priceCache.SetLatest(ctx, latest); err != nil {
		s.logger.Warn("Failed to refresh price cache", logger.ErrorField(err), logger.Field("stock", name))
	}
	return latest, nil
}
