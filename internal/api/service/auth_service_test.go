package service

import (
	"context"
	"testing"

	"tradex/internal/api/dto"
	"tradex/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_IssuesToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, logger.NewNop())

	token, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "alice123", Password: "s3cretpw"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AuthToken)

	user, err := repo.FindByUsername(context.Background(), "alice123")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpw", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpw")))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, logger.NewNop())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "alice123", Password: "s3cretpw"})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), &dto.RegisterRequest{Username: "alice123", Password: "0therpw"})

	var validationErrs dto.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs, "username")
}

func TestRegister_CredentialShape(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		field    string
	}{
		{"short username", "ab", "s3cretpw", "username"},
		{"short password", "alice123", "pw", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(newFakeUserRepo(), logger.NewNop())

			_, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: tt.username, Password: tt.password})

			var validationErrs dto.ValidationErrors
			require.ErrorAs(t, err, &validationErrs)
			assert.Contains(t, validationErrs, tt.field)
		})
	}
}

func TestLogin_ReturnsSameTokenEachTime(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, logger.NewNop())

	registered, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "alice123", Password: "s3cretpw"})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice123", Password: "s3cretpw"})
	require.NoError(t, err)
	assert.Equal(t, registered.AuthToken, login.AuthToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, logger.NewNop())
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "alice123", Password: "s3cretpw"})
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice123", Password: "wrongpw1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "nobody99", Password: "s3cretpw"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestResolveToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, logger.NewNop())
	token, err := svc.Register(context.Background(), &dto.RegisterRequest{Username: "alice123", Password: "s3cretpw"})
	require.NoError(t, err)

	user, err := svc.ResolveToken(context.Background(), token.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, "alice123", user.Username)

	_, err = svc.ResolveToken(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
