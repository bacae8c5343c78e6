package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
	"github.com/taantti/erp-demo/pkg/blacklist"
	"github.com/taantti/erp-demo/pkg/hash"
	"github.com/taantti/erp-demo/pkg/jwt"
)

type AuthService struct {
	userRepo       repository.UserRepository
	tokenService   *jwt.TokenService
	tokenBlacklist *blacklist.TokenBlacklist
	logger         *slog.Logger
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required,min=8,max=256"`
}

type LoginResponse struct {
	Token *domain.TokenResponse `json:"token"`
	User  *domain.User          `json:"user"`
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenService *jwt.TokenService,
	tokenBlacklist *blacklist.TokenBlacklist,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		tokenService:   tokenService,
		tokenBlacklist: tokenBlacklist,
		logger:         logger,
	}
}

// Login verifies a username/password pair and issues an access token. A
// wrong password, unknown username and inactive account all yield the same
// 401 so the response leaks nothing about which check failed.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.WarnContext(ctx, "login attempt for unknown username", "username", username)
			return nil, apperror.InvalidLogin()
		}
		return nil, apperror.Internal(err)
	}

	match, err := hash.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !match {
		s.logger.WarnContext(ctx, "login attempt with wrong password", "username", username)
		return nil, apperror.InvalidLogin()
	}

	if !user.Active {
		s.logger.WarnContext(ctx, "login attempt for inactive account", "username", username)
		return nil, apperror.InvalidLogin()
	}

	token, err := s.tokenService.Generate(user.ID, user.Username)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.InfoContext(ctx, "login succeeded", "username", username)
	return &LoginResponse{Token: token, User: user}, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if err := s.tokenBlacklist.Revoke(ctx, token, expiresAt); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
