package usecase

import (
	"context"
	"fmt"
	"strings"

	"planetarium-booking/internal/data/entity"
	"planetarium-booking/internal/data/repository"
	"planetarium-booking/internal/dto/request"
	"planetarium-booking/internal/dto/response"
	"planetarium-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Token(ctx context.Context, req *request.TokenRequest) (*response.TokenPairResponse, error)
	Refresh(ctx context.Context, req *request.RefreshRequest) (*response.AccessTokenResponse, error)
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *utils.TokenManager
	config   *utils.Config
	log      *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *utils.TokenManager, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		config:   config,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, newValidationError("invalid registration", errs)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Cek email sudah terdaftar
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, newValidationError("invalid registration", map[string]string{
			"email": "User with this email already exists",
		})
	}

	// 3. Hash password & simpan
	hash, err := utils.HashPassword(req.Password, s.config.Security.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{Email: email, PasswordHash: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errorsIsDuplicate(err) {
			return nil, newValidationError("invalid registration", map[string]string{
				"email": "User with this email already exists",
			})
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered", zap.Int64("user_id", user.ID), zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Token(ctx context.Context, req *request.TokenRequest) (*response.TokenPairResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid credentials", errs)
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := utils.CheckPassword(user.PasswordHash, req.Password)
	if err != nil {
		s.log.Error("Stored password hash is unreadable", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}
	if !ok {
		s.log.Warn("Wrong password", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccess(user.ID, user.IsStaff)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefresh(user.ID, user.IsStaff)
	if err != nil {
		return nil, err
	}

	return &response.TokenPairResponse{Access: access, Refresh: refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, req *request.RefreshRequest) (*response.AccessTokenResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError("invalid refresh request", errs)
	}

	claims, err := s.tokens.Parse(req.Refresh, utils.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// staff flag may have changed since the refresh token was issued
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccess(user.ID, user.IsStaff)
	if err != nil {
		return nil, err
	}

	return &response.AccessTokenResponse{Access: access}, nil
}

// Authenticate resolves an access token to its user. An invalid token or a
// deleted user yields nil, nil.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := s.tokens.Parse(accessToken, utils.TokenTypeAccess)
	if err != nil {
		return nil, nil
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	return user, nil
}

// EnsureAdmin creates the bootstrap staff account, or promotes it if it already exists.
func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find admin: %w", err)
	}

	if user != nil {
		if user.IsStaff {
			return nil
		}
		if err := s.userRepo.SetStaff(ctx, user.ID, true); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		s.log.Info("Existing user promoted to staff", zap.Int64("user_id", user.ID))
		return nil
	}

	hash, err := utils.HashPassword(password, s.config.Security.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := &entity.User{Email: email, PasswordHash: hash, IsStaff: true}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.log.Info("Staff account created", zap.Int64("user_id", admin.ID), zap.String("email", email))
	return nil
}
