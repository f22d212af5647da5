package repository

import (
	"context"

	"tradex/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockPositionRepository defines the persistence contract for user stock
// positions. The (user_id, stock_name) unique constraint lives in the
// database and is the last line of defense against concurrent first buys.
type StockPositionRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]entity.StockPosition, error)
	Find(ctx context.Context, userID uint, stockName string) (*entity.StockPosition, error)
	FindForUpdate(ctx context.Context, userID uint, stockName string) (*entity.StockPosition, error)
	Save(ctx context.Context, position *entity.StockPosition) error
	Delete(ctx context.Context, position *entity.StockPosition) error
	// ExecuteTx runs fn against a repository bound to a single database
	// transaction. FindForUpdate inside fn holds a row lock until commit.
	ExecuteTx(ctx context.Context, fn func(txRepo StockPositionRepository) error) error
}

// NewStockPositionRepository creates a new GORM-based position repository.
func NewStockPositionRepository(db *gorm.DB) StockPositionRepository {
	return &stockPositionRepository{db: db}
}

type stockPositionRepository struct {
	db *gorm.DB
}

// FindByUser retrieves all positions held by a user, newest first.
func (r *stockPositionRepository) FindByUser(ctx context.Context, userID uint) ([]entity.StockPosition, error) {
	var positions []entity.StockPosition
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&positions).Error
	if err != nil {
		return nil, translate(err)
	}
	return positions, nil
}

// Find retrieves the position for a (user, stock name) pair.
func (r *stockPositionRepository) Find(ctx context.Context, userID uint, stockName string) (*entity.StockPosition, error) {
	return r.find(ctx, userID, stockName, false)
}

// FindForUpdate retrieves the position with a SELECT ... FOR UPDATE row
// lock. Only meaningful inside ExecuteTx.
func (r *stockPositionRepository) FindForUpdate(ctx context.Context, userID uint, stockName string) (*entity.StockPosition, error) {
	return r.find(ctx, userID, stockName, true)
}

func (r *stockPositionRepository) find(ctx context.Context, userID uint, stockName string, lock bool) (*entity.StockPosition, error) {
	var position entity.StockPosition
	q := r.db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.Where("user_id = ? AND stock_name = ?", userID, stockName).
		First(&position).Error
	if err != nil {
		return nil, translate(err)
	}
	return &position, nil
}

// Save inserts or updates a position.
func (r *stockPositionRepository) Save(ctx context.Context, position *entity.StockPosition) error {
	return translate(r.db.WithContext(ctx).Save(position).Error)
}

// Delete removes a position row.
func (r *stockPositionRepository) Delete(ctx context.Context, position *entity.StockPosition) error {
	return translate(r.db.WithContext(ctx).Delete(position).Error)
}

// ExecuteTx wraps fn in a database transaction, handing it a repository
// bound to that transaction.
func (r *stockPositionRepository) ExecuteTx(ctx context.Context, fn func(txRepo StockPositionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&stockPositionRepository{db: tx})
	})
}
