package utils

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"sales-dashboard/internal/authz"
	"sales-dashboard/pkg/contextkeys"
	apperrors "sales-dashboard/pkg/errors"
)

func ContextWithTimeout(ctx echo.Context, timeout int) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request().Context(), time.Duration(timeout)*time.Second)
}

func WithSession(ctx context.Context, session *authz.AuthSession) context.Context {
	ctx = context.WithValue(ctx, contextkeys.SessionKey, session)
	return context.WithValue(ctx, contextkeys.UserIDKey, session.UserID)
}

func GetSessionFromCtx(ctx context.Context) (*authz.AuthSession, error) {
	session, ok := ctx.Value(contextkeys.SessionKey).(*authz.AuthSession)
	if !ok || session == nil {
		return nil, apperrors.ErrSessionNotFoundInContext
	}
	return session, nil
}
