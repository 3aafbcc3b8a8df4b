package usecase

import (
	"context"
	"fmt"
	"testing"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/request"
	"planetarium-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (AuthService, *repoMocks, *utils.TokenManager) {
	repo, m := newRepoMocks(t)
	config := &utils.Config{
		JWT:      utils.JWTConfig{Secret: "test-secret", AccessTTLMinutes: 5, RefreshTTLHours: 1},
		Security: utils.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
	tokens := utils.NewTokenManager(config.JWT)
	return NewAuthService(repo.User, tokens, config, zap.NewNop()), m, tokens
}

func TestAuthService_Register(t *testing.T) {
	svc, m, _ := newTestAuthService(t)
	ctx := context.Background()

	m.user.On("FindByEmail", ctx, "ada@example.com").Return(nil, nil)
	m.user.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "ada@example.com" && u.PasswordHash != "hunter22" && !u.IsStaff
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = 1
	}).Return(nil)

	user, err := svc.Register(ctx, &request.RegisterRequest{Email: "Ada@Example.com", Password: "hunter22"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.False(t, user.IsStaff)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, m, _ := newTestAuthService(t)
	ctx := context.Background()

	m.user.On("FindByEmail", ctx, "ada@example.com").Return(nil, nil)
	m.user.On("Create", ctx, mock.Anything).Return(fmt.Errorf("create user: %w", repository.ErrDuplicate))

	_, err := svc.Register(ctx, &request.RegisterRequest{Email: "ada@example.com", Password: "hunter22"})

	verr := asValidationError(t, err)
	assert.Contains(t, verr.Fields, "email")
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{Email: "ada@example.com", Password: "abc"})

	verr := asValidationError(t, err)
	assert.Equal(t, "Minimum length is 5", verr.Fields["password"])
}

func TestAuthService_TokenRefreshAuthenticate(t *testing.T) {
	svc, m, tokens := newTestAuthService(t)
	ctx := context.Background()

	hash, err := utils.HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{BaseSimple: entity.BaseSimple{ID: 9}, Email: "ada@example.com", PasswordHash: hash, IsStaff: true}

	m.user.On("FindByEmail", ctx, "ada@example.com").Return(user, nil)
	m.user.On("FindByID", ctx, int64(9)).Return(user, nil)

	pair, err := svc.Token(ctx, &request.TokenRequest{Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := tokens.Parse(pair.Access, utils.TokenTypeAccess)
	require.NoError(t, err)
	assert.True(t, claims.IsStaff)

	refreshed, err := svc.Refresh(ctx, &request.RefreshRequest{Refresh: pair.Refresh})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Access)

	// an access token is not accepted as a refresh token
	_, err = svc.Refresh(ctx, &request.RefreshRequest{Refresh: pair.Access})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	authenticated, err := svc.Authenticate(ctx, refreshed.Access)
	require.NoError(t, err)
	assert.Equal(t, user, authenticated)

	// and a refresh token does not authenticate requests
	authenticated, err = svc.Authenticate(ctx, pair.Refresh)
	assert.NoError(t, err)
	assert.Nil(t, authenticated)
}

func TestAuthService_Token_WrongPassword(t *testing.T) {
	svc, m, _ := newTestAuthService(t)
	ctx := context.Background()

	hash, err := utils.HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)

	m.user.On("FindByEmail", ctx, "ada@example.com").
		Return(&entity.User{BaseSimple: entity.BaseSimple{ID: 9}, Email: "ada@example.com", PasswordHash: hash}, nil)
	m.user.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil)

	_, err = svc.Token(ctx, &request.TokenRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Token(ctx, &request.TokenRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	t.Run("creates staff account", func(t *testing.T) {
		svc, m, _ := newTestAuthService(t)
		ctx := context.Background()

		m.user.On("FindByEmail", ctx, "admin@example.com").Return(nil, nil)
		m.user.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool { return u.IsStaff })).Return(nil)

		require.NoError(t, svc.EnsureAdmin(ctx, "Admin@example.com", "secret"))
	})

	t.Run("promotes existing user", func(t *testing.T) {
		svc, m, _ := newTestAuthService(t)
		ctx := context.Background()

		m.user.On("FindByEmail", ctx, "admin@example.com").
			Return(&entity.User{BaseSimple: entity.BaseSimple{ID: 3}, Email: "admin@example.com"}, nil)
		m.user.On("SetStaff", ctx, int64(3), true).Return(nil)

		require.NoError(t, svc.EnsureAdmin(ctx, "admin@example.com", "secret"))
	})

	t.Run("disabled without credentials", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)
		require.NoError(t, svc.EnsureAdmin(context.Background(), "", ""))
	})
}
