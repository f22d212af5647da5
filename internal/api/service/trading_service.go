package service

import (
	"context"
	"errors"

	"tradex/internal/api/dto"
	"tradex/internal/api/repository"
	"tradex/internal/entity"
	"tradex/pkg/logger"

	"github.com/shopspring/decimal"
)

// maxInvestedAmount is the largest value storable in the invested_amount
// column (numeric(8,2)). Mutations that would exceed it are rejected.
var maxInvestedAmount = decimal.RequireFromString("999999.99")

// TradingService applies buy and sell instructions to user positions and
// lists a user's portfolio.
type TradingService interface {
	Trade(ctx context.Context, userID uint, mode dto.TradeMode, req *dto.TradeRequest) (*dto.TradeResponse, error)
	GetPortfolio(ctx context.Context, userID uint) ([]dto.PositionResponse, error)
}

// NewTradingService creates a new trading service.
func NewTradingService(positionRepo repository.StockPositionRepository, pricingSvc PricingService, logger *logger.Logger) TradingService {
	return &tradingService{
		positionRepo: positionRepo,
		pricingSvc:   pricingSvc,
		logger:       logger,
	}
}

type tradingService struct {
	positionRepo repository.StockPositionRepository
	pricingSvc   PricingService
	logger       *logger.Logger
}

// Trade validates the instruction, resolves the latest price, and applies
// the mutation inside a single transaction holding a row lock on the
// position. A full sell deletes the position and returns its snapshot.
func (s *tradingService) Trade(ctx context.Context, userID uint, mode dto.TradeMode, req *dto.TradeRequest) (*dto.TradeResponse, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	// The price must resolve before the mutation starts; without it the
	// position is left untouched.
	latest, err := s.pricingSvc.LatestPrice(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	var (
		result     entity.StockPosition
		liquidated bool
	)
	err = s.positionRepo.ExecuteTx(ctx, func(txRepo repository.StockPositionRepository) error {
		position, err := txRepo.FindForUpdate(ctx, userID, req.Name)
		if errors.Is(err, repository.ErrNotFound) {
			if mode == dto.TradeModeSell {
				return ErrPositionNotFound
			}
			// First buy starts from an implicit empty position.
			position = &entity.StockPosition{
				UserID:         userID,
				StockName:      req.Name,
				Quantity:       0,
				InvestedAmount: decimal.Zero,
			}
		} else if err != nil {
			return err
		}

		switch mode {
		case dto.TradeModeBuy:
			if err := applyBuy(position, latest, req.Quantity); err != nil {
				return err
			}
		case dto.TradeModeSell:
			ok, err := applySell(position, latest, req.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				liquidated = true
				result = *position
				return txRepo.Delete(ctx, position)
			}
		default:
			return dto.FieldError("mode", "must be buy or sell")
		}

		if err := txRepo.Save(ctx, position); err != nil {
			return err
		}
		result = *position
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Trade applied",
		logger.Field("user_id", userID),
		logger.Field("stock", req.Name),
		logger.Field("mode", string(mode)),
		logger.Field("quantity", req.Quantity),
		logger.Field("liquidated", liquidated))

	return &dto.TradeResponse{
		Position: dto.PositionResponse{
			ID:             result.ID,
			StockName:      result.StockName,
			Quantity:       result.Quantity,
			InvestedAmount: result.InvestedAmount,
		},
		Liquidated: liquidated,
	}, nil
}

// applyBuy increments quantity and adds price x quantity to the invested
// amount, repointing the position at the resolved observation.
func applyBuy(position *entity.StockPosition, latest *entity.Stock, quantity int) error {
	cost := latest.Price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	invested := position.InvestedAmount.Add(cost)
	if invested.GreaterThan(maxInvestedAmount) {
		return dto.FieldError("quantity", "purchase exceeds the storable invested amount")
	}

	position.Quantity += quantity
	position.InvestedAmount = invested
	position.StockID = latest.ID
	return nil
}

// applySell decrements quantity, reducing the invested amount by the
// average cost per share held before the sale. Returns false when the sell
// empties the position, in which case the invested amount is left as-is
// and the row must be deleted.
func applySell(position *entity.StockPosition, latest *entity.Stock, quantity int) (keep bool, err error) {
	if quantity > position.Quantity {
		return false, dto.FieldError("quantity", "cannot sell more than you own")
	}

	// Average cost must be derived fresh from the pre-sale pair each time:
	// the invested amount moves by per-share cost, not market price, on
	// partial sells.
	averageCost := position.AverageCost()

	position.Quantity -= quantity
	position.StockID = latest.ID
	if position.Quantity <= 0 {
		return false, nil
	}

	reduction := averageCost.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	invested := position.InvestedAmount.Sub(reduction)
	if invested.IsNegative() {
		invested = decimal.Zero
	}
	position.InvestedAmount = invested
	return true, nil
}

// GetPortfolio lists the user's positions with the latest price resolved
// per stock name at read time.
func (s *tradingService) GetPortfolio(ctx context.Context, userID uint) ([]dto.PositionResponse, error) {
	positions, err := s.positionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PositionResponse, 0, len(positions))
	for _, position := range positions {
		resp := dto.PositionResponse{
			ID:             position.ID,
			StockName:      position.StockName,
			Quantity:       position.Quantity,
			InvestedAmount: position.InvestedAmount,
		}
		latest, err := s.pricingSvc.LatestPrice(ctx, position.StockName)
		if err == nil {
			price := latest.Price
			resp.LatestPrice = &price
		} else if !errors.Is(err, ErrPriceUnavailable) {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
