package service

import (
	"context"
	"errors"

	"tradex/internal/api/dto"
	"tradex/internal/api/repository"
	"tradex/internal/entity"
	"tradex/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account creation, token issuance and token
// resolution.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	ResolveToken(ctx context.Context, key string) (*entity.User, error)
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, logger *logger.Logger) AuthService {
	return &authService{userRepo: userRepo, logger: logger}
}

type authService struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

// Register creates a user and issues their token.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{Username: req.Username, PasswordHash: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, dto.FieldError("username", "already taken")
		}
		return nil, err
	}

	token, err := s.userRepo.GetOrCreateToken(ctx, user.ID, uuid.NewString())
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", logger.Field("user_id", user.ID))
	return &dto.TokenResponse{AuthToken: token.Key}, nil
}

// Login checks credentials and returns the user's token, creating one on
// first login.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.userRepo.GetOrCreateToken(ctx, user.ID, uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AuthToken: token.Key}, nil
}

// ResolveToken returns the user owning the given token key.
func (s *authService) ResolveToken(ctx context.Context, key string) (*entity.User, error) {
	token, err := s.userRepo.FindTokenByKey(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	user := token.User
	return &user, nil
}
