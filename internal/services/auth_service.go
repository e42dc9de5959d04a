package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sales-dashboard/internal/authz"
	"sales-dashboard/internal/dto"
	"sales-dashboard/internal/entities"
	"sales-dashboard/internal/repositories"
	"sales-dashboard/pkg/config"
	apperrors "sales-dashboard/pkg/errors"
	"sales-dashboard/pkg/service"
	"sales-dashboard/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error)
	LoadSession(ctx context.Context, userID uuid.UUID) (*authz.AuthSession, error)
}

type AuthService struct {
	profiles  repositories.ProfileRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	jwt       service.JWTService
	cfg       config.AuthConfig
	logger    *zap.Logger
}

func NewAuthService(
	profiles repositories.ProfileRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwt service.JWTService,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{profiles: profiles, cacheRepo: cacheRepo, jwt: jwt, cfg: cfg, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	profile, err := s.profiles.FindByEmail(ctx, payload.Email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("falha ao buscar perfil no login", zap.Error(err))
		}
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := s.checkLockout(ctx, profile.ID); err != nil {
		return nil, err
	}
	if err := utils.ComparePasswords(profile.PasswordHash, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, profile.ID)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !profile.Active {
		return nil, apperrors.ErrInactiveUser
	}
	s.resetLoginAttempts(ctx, profile.ID)

	s.logger.Info("login realizado", zap.String("userID", profile.ID.String()))
	return s.issue(profile)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponseDTO, error) {
	claims, err := s.jwt.ValidateToken(strings.TrimSpace(refreshToken))
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}
	profile, err := s.loadActive(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return s.issue(profile)
}

// LoadSession rebuilds the caller's session from the current profile row.
func (s *AuthService) LoadSession(ctx context.Context, userID uuid.UUID) (*authz.AuthSession, error) {
	profile, err := s.loadActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return authz.NewSession(profile), nil
}

func (s *AuthService) loadActive(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("falha ao carregar perfil: %w", err)
	}
	if !profile.Active {
		return nil, apperrors.ErrInactiveUser
	}
	return profile, nil
}

func (s *AuthService) issue(profile *entities.Profile) (*dto.AuthResponseDTO, error) {
	access, refresh, err := s.jwt.GenerateTokens(profile.ID)
	if err != nil {
		return nil, apperrors.NewHttpError(500, "Erro ao gerar tokens", err, nil)
	}
	return &dto.AuthResponseDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		Session:      authz.NewSession(profile),
	}, nil
}

func (s *AuthService) checkLockout(ctx context.Context, userID uuid.UUID) error {
	if s.cacheRepo == nil {
		return nil
	}
	if _, err := s.cacheRepo.Get(ctx, "lockout:"+userID.String()); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID uuid.UUID) {
	if s.cacheRepo == nil || s.cfg.MaxLoginAttempts <= 0 {
		return
	}
	attemptsKey := "login_attempts:" + userID.String()
	attempts, err := s.cacheRepo.Incr(ctx, attemptsKey)
	if err != nil {
		s.logger.Warn("falha ao contar tentativas de login", zap.Error(err))
		return
	}
	// the window starts at the first failure; later failures do not extend it
	if attempts == 1 {
		if _, err := s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration); err != nil {
			s.logger.Warn("falha ao definir expiração das tentativas de login", zap.Error(err))
		}
	}
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		_ = s.cacheRepo.Set(ctx, "lockout:"+userID.String(), "locked", s.cfg.LockoutDuration)
		_ = s.cacheRepo.Del(ctx, attemptsKey)
		s.logger.Warn("conta bloqueada por excesso de tentativas", zap.String("userID", userID.String()))
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID uuid.UUID) {
	if s.cacheRepo == nil {
		return
	}
	_ = s.cacheRepo.Del(ctx, "login_attempts:"+userID.String(), "lockout:"+userID.String())
}
