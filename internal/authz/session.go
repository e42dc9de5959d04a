package authz

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"sales-dashboard/internal/entities"
)

// managerRoles may see the team dashboard and administer goals.
var managerRoles = map[entities.Role]bool{
	entities.RoleAdmin:         true,
	entities.RoleManager:       true,
	entities.RoleHeadComercial: true,
	entities.RoleGestor:        true,
}

// HasManagerAccess matches role against the manager allow-list, ignoring case.
func HasManagerAccess(role entities.Role) bool {
	return managerRoles[entities.Role(strings.ToLower(strings.TrimSpace(string(role))))]
}

// AuthSession is the authenticated caller, built once per request and passed explicitly.
type AuthSession struct {
	UserID    uuid.UUID     `json:"user_id"`
	Email     string        `json:"email"`
	FullName  string        `json:"full_name"`
	Role      entities.Role `json:"role"`
	IsManager bool          `json:"is_manager"`

	permissions map[string]bool
}

func NewSession(p *entities.Profile) *AuthSession {
	s := &AuthSession{
		UserID:    p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      p.Role,
		IsManager: HasManagerAccess(p.Role),
	}
	s.permissions = PermissionsFor(p.Role)
	return s
}

// PermissionsFor expands a role into its permission set.
func PermissionsFor(role entities.Role) map[string]bool {
	list := memberPermissions
	if HasManagerAccess(role) {
		list = managerPermissions
	}
	perms := make(map[string]bool, len(list))
	for _, p := range list {
		perms[p] = true
	}
	return perms
}

// Permissions lists the granted permissions in sorted order.
func (s *AuthSession) Permissions() []string {
	out := make([]string, 0, len(s.permissions))
	for p := range s.permissions {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
