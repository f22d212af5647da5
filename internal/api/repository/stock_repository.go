package repository

import (
	"context"

	"tradex/internal/entity"

	"gorm.io/gorm"
)

// StockRepository defines read access to the price observation catalog.
type StockRepository interface {
	FindAll(ctx context.Context) ([]entity.Stock, error)
	FindHistory(ctx context.Context, name string) ([]entity.Stock, error)
	FindLatest(ctx context.Context, name string) (*entity.Stock, error)
	FindNames(ctx context.Context) ([]string, error)
}

// NewStockRepository creates a new GORM-based stock repository.
func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

type stockRepository struct {
	db *gorm.DB
}

// FindAll retrieves every price observation, newest first.
func (r *stockRepository) FindAll(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&stocks).Error
	if err != nil {
		return nil, translate(err)
	}
	return stocks, nil
}

// FindHistory retrieves all observations for an exact name, chronological
// ascending.
func (r *stockRepository) FindHistory(ctx context.Context, name string) ([]entity.Stock, error) {
	var stocks []entity.Stock
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at ASC, id ASC").
		Find(&stocks).Error
	if err != nil {
		return nil, translate(err)
	}
	return stocks, nil
}

// FindLatest retrieves the observation with the greatest created_at for an
// exact name, ties broken by id descending.
func (r *stockRepository) FindLatest(ctx context.Context, name string) (*entity.Stock, error) {
	var stock entity.Stock
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("created_at DESC, id DESC").
		First(&stock).Error
	if err != nil {
		return nil, translate(err)
	}
	return &stock, nil
}

// FindNames retrieves the distinct stock names present in the catalog.
func (r *stockRepository) FindNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&entity.Stock{}).
		Distinct("name").
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, translate(err)
	}
	return names, nil
}
