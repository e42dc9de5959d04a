package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"sales-dashboard/internal/entities"
)

func TestHasManagerAccess(t *testing.T) {
	for _, role := range []entities.Role{"admin", "manager", "head_comercial", "gestor", "ADMIN", " Gestor "} {
		assert.True(t, HasManagerAccess(role), role)
	}
	for _, role := range []entities.Role{"sdr", "closer", "social_seller", "ceo", "outro", ""} {
		assert.False(t, HasManagerAccess(role), role)
	}
}

func TestNewSession(t *testing.T) {
	p := &entities.Profile{ID: uuid.New(), FullName: "Ana", Email: "ana@x.com", Role: entities.RoleHeadComercial}
	s := NewSession(p)

	assert.Equal(t, p.ID, s.UserID)
	assert.True(t, s.IsManager)
	assert.Contains(t, s.Permissions(), DashboardView)
}

func TestGatekeeper_Can(t *testing.T) {
	g := NewGatekeeper()
	manager := NewSession(&entities.Profile{ID: uuid.New(), Role: entities.RoleManager})
	sdr := NewSession(&entities.Profile{ID: uuid.New(), Role: entities.RoleSDR})
	other := uuid.New()

	assert.True(t, g.Can(manager, DashboardView, nil))
	assert.True(t, g.Can(manager, GoalsViewOwn, &other))

	assert.False(t, g.Can(sdr, DashboardView, nil))
	assert.False(t, g.Can(sdr, GoalsManage, nil))
	assert.True(t, g.Can(sdr, GoalsViewOwn, &sdr.UserID))
	assert.False(t, g.Can(sdr, GoalsViewOwn, &other))

	assert.False(t, g.Can(nil, GoalsViewOwn, nil))
}
