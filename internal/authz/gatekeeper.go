package authz

import (
	"github.com/google/uuid"
)

// Gatekeeper answers permission questions for a session.
type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

// Can checks a permission, and for own-scoped permissions that the target
// user is the caller. A nil target skips the ownership check.
func (g *Gatekeeper) Can(session *AuthSession, permission string, targetUserID *uuid.UUID) bool {
	if session == nil || !session.permissions[permission] {
		return false
	}
	if session.IsManager || targetUserID == nil {
		return true
	}
	return *targetUserID == session.UserID
}
