package middleware

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sales-dashboard/internal/authz"
	apperrors "sales-dashboard/pkg/errors"
	"sales-dashboard/pkg/service"
	"sales-dashboard/pkg/utils"
)

// SessionLoader builds the session of an authenticated user id.
type SessionLoader interface {
	LoadSession(ctx context.Context, userID uuid.UUID) (*authz.AuthSession, error)
}

type AuthMiddleware struct {
	jwtService service.JWTService
	sessions   SessionLoader
	gatekeeper *authz.Gatekeeper
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, sessions SessionLoader, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		sessions:   sessions,
		gatekeeper: authz.NewGatekeeper(),
		logger:     logger,
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.ErrEmptyAuthHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.ErrInvalidAuthHeader
	}
	return strings.TrimSpace(parts[1]), nil
}

// Auth validates the access token and stores the caller's AuthSession in the request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := bearerToken(c.Request().Header.Get("Authorization"))
		if err != nil {
			m.logger.Warn("AuthMiddleware: cabeçalho Authorization inválido", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			return utils.ErrorResponse(c, err, m.logger)
		}
		if claims.IsRefreshToken {
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess, m.logger)
		}

		ctx := c.Request().Context()
		session, err := m.sessions.LoadSession(ctx, claims.UserID)
		if err != nil {
			m.logger.Warn("AuthMiddleware: sessão não carregada", zap.String("userID", claims.UserID.String()), zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		c.SetRequest(c.Request().WithContext(utils.WithSession(ctx, session)))
		return next(c)
	}
}

// Require rejects callers whose session lacks permission.
func (m *AuthMiddleware) Require(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := utils.GetSessionFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err, m.logger)
			}
			if !m.gatekeeper.Can(session, permission, nil) {
				m.logger.Info("acesso negado",
					zap.String("userID", session.UserID.String()),
					zap.String("role", string(session.Role)),
					zap.String("permission", permission),
				)
				return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
			}
			return next(c)
		}
	}
}

// WebhookToken guards collaborator endpoints with a shared bearer secret.
// An empty secret disables the check.
func WebhookToken(secret string, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				logger.Error("webhook recusado: WEBHOOK_SECRET não configurado", zap.String("path", c.Path()))
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, logger)
			}
			token, err := bearerToken(c.Request().Header.Get("Authorization"))
			if err != nil {
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, logger)
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				logger.Warn("webhook com token inválido", zap.String("path", c.Path()), zap.String("ip", c.RealIP()))
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, logger)
			}
			return next(c)
		}
	}
}
