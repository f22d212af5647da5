package repository

import (
	"context"
	"errors"

	"tradex/internal/entity"

	"gorm.io/gorm"
)

// UserRepository defines the persistence contract for users and their
// auth tokens.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	GetOrCreateToken(ctx context.Context, userID uint, newKey string) (*entity.AuthToken, error)
	FindTokenByKey(ctx context.Context, key string) (*entity.AuthToken, error)
}

// NewUserRepository creates a new GORM-based user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

type userRepository struct {
	db *gorm.DB
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

// FindByUsername retrieves a user by exact username.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetOrCreateToken returns the user's existing token or creates one with
// the supplied key. A concurrent create losing the unique-constraint race
// falls back to reading the winner's row.
func (r *userRepository) GetOrCreateToken(ctx context.Context, userID uint, newKey string) (*entity.AuthToken, error) {
	var token entity.AuthToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, translate(err)
	}

	token = entity.AuthToken{Key: newKey, UserID: userID}
	err = r.db.WithContext(ctx).Create(&token).Error
	if errors.Is(translate(err), ErrDuplicate) {
		err = r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	}
	if err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

// FindTokenByKey retrieves a token and its owning user.
func (r *userRepository) FindTokenByKey(ctx context.Context, key string) (*entity.AuthToken, error) {
	var token entity.AuthToken
	err := r.db.WithContext(ctx).Preload("User").Where("key = ?", key).First(&token).Error
	if err != nil {
		return nil, translate(err)
	}
	return &token, nil
}
