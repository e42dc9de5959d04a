package dto

import "sales-dashboard/internal/authz"

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponseDTO struct {
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
	Session      *authz.AuthSession `json:"session"`
}

type MeDTO struct {
	Session     *authz.AuthSession `json:"session"`
	Permissions []string           `json:"permissions"`
}
