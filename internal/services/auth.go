package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"certificate-system/internal/dto"
	apperrors "certificate-system/pkg/errors"
	"certificate-system/pkg/service"
)

type AuthServiceInterface interface {
	IssueToken(ctx context.Context, req dto.TokenRequestDTO) (*dto.TokenResponseDTO, error)
}

// AuthService exchanges the shared installer API key for a signed access token.
type AuthService struct {
	jwtService service.JWTService
	apiKeyHash []byte
	logger     *zap.Logger
}

func NewAuthService(jwtService service.JWTService, apiKeyHash string, logger *zap.Logger) AuthServiceInterface {
	return &AuthService{jwtService: jwtService, apiKeyHash: []byte(apiKeyHash), logger: logger}
}

func (s *AuthService) IssueToken(ctx context.Context, req dto.TokenRequestDTO) (*dto.TokenResponseDTO, error) {
	if len(s.apiKeyHash) == 0 {
		s.logger.Error("API key hash is not configured")
		return nil, apperrors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.apiKeyHash, []byte(req.APIKey)); err != nil {
		s.logger.Warn("rejected API key", zap.String("installer_id", req.InstallerID))
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateToken(req.InstallerID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponseDTO{AccessToken: token, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}
