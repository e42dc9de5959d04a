package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type Role string

const (
	RoleSDR           Role = "sdr"
	RoleCloser        Role = "closer"
	RoleSocialSeller  Role = "social_seller"
	RoleGestor        Role = "gestor"
	RoleManager       Role = "manager"
	RoleHeadComercial Role = "head_comercial"
	RoleAdmin         Role = "admin"
	RoleCEO           Role = "ceo"
	RoleOther         Role = "outro"
)

var Roles = []Role{RoleSDR, RoleCloser, RoleSocialSeller, RoleGestor, RoleManager, RoleHeadComercial, RoleAdmin, RoleCEO, RoleOther}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

type Profile struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    null.Time `json:"updated_at"`
}
