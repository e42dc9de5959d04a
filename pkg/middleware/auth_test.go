package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sales-dashboard/internal/authz"
	"sales-dashboard/internal/entities"
	apperrors "sales-dashboard/pkg/errors"
	"sales-dashboard/pkg/service"
	"sales-dashboard/pkg/utils"
)

type stubSessions struct {
	profiles map[uuid.UUID]*entities.Profile
}

func (s stubSessions) LoadSession(ctx context.Context, userID uuid.UUID) (*authz.AuthSession, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	return authz.NewSession(p), nil
}

func ok(c echo.Context) error {
	session, err := utils.GetSessionFromCtx(c.Request().Context())
	if err != nil {
		return c.String(http.StatusOK, "anon")
	}
	return c.String(http.StatusOK, session.FullName)
}

func serve(e *echo.Echo, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	jwtSvc := service.NewJWTService("segredo", time.Hour, time.Hour, zap.NewNop())
	manager := &entities.Profile{ID: uuid.New(), FullName: "Gestora", Role: entities.RoleGestor, Active: true}
	sdr := &entities.Profile{ID: uuid.New(), FullName: "Sdr", Role: entities.RoleSDR, Active: true}
	m := NewAuthMiddleware(jwtSvc, stubSessions{profiles: map[uuid.UUID]*entities.Profile{manager.ID: manager, sdr.ID: sdr}}, zap.NewNop())

	e := echo.New()
	e.GET("/x", ok, m.Auth, m.Require(authz.DashboardView))

	managerAccess, managerRefresh, err := jwtSvc.GenerateTokens(manager.ID)
	require.NoError(t, err)
	sdrAccess, _, err := jwtSvc.GenerateTokens(sdr.ID)
	require.NoError(t, err)
	ghostAccess, _, err := jwtSvc.GenerateTokens(uuid.New())
	require.NoError(t, err)

	rec := serve(e, "Bearer "+managerAccess)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Gestora", rec.Body.String())

	assert.Equal(t, http.StatusForbidden, serve(e, "Bearer "+sdrAccess).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, "Bearer "+managerRefresh).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, "Bearer "+ghostAccess).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, "Token abc").Code)
}

func TestWebhookToken(t *testing.T) {
	e := echo.New()
	e.GET("/x", ok, WebhookToken("s3cr3t", zap.NewNop()))

	assert.Equal(t, http.StatusOK, serve(e, "Bearer s3cr3t").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, "Bearer errado").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, "").Code)

	unset := echo.New()
	unset.GET("/x", ok, WebhookToken("", zap.NewNop()))
	assert.Equal(t, http.StatusUnauthorized, serve(unset, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(unset, "Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(unset, "Bearer qualquer").Code)
}
