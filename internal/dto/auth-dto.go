package dto

import "time"

type TokenRequestDTO struct {
	InstallerID string `json:"installer_id" validate:"required,max=64"`
	APIKey      string `json:"api_key" validate:"required"`
}

type TokenResponseDTO struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
