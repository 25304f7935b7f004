package auth

import (
	"context"
	"fmt"

	"github.com/dentalops/dental-admin-api/internal/model"
	"github.com/dentalops/dental-admin-api/internal/repository"
	pkgauth "github.com/dentalops/dental-admin-api/pkg/auth"
	"github.com/dentalops/dental-admin-api/pkg/errors"
	"github.com/dentalops/dental-admin-api/pkg/security"
)

type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	ValidateToken(token string) (*pkgauth.TokenClaims, error)
}

type Service struct {
	clinicianRepo repository.ClinicianRepository
	hasher        security.PasswordHasher
	jwt           pkgauth.JWTService
}

func NewService(clinicianRepo repository.ClinicianRepository, hasher security.PasswordHasher, jwt pkgauth.JWTService) *Service {
	return &Service{
		clinicianRepo: clinicianRepo,
		hasher:        hasher,
		jwt:           jwt,
	}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	clinician, err := s.clinicianRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized(nil)
		}
		return nil, fmt.Errorf("failed to get clinician: %w", err)
	}
	if err := s.hasher.Compare(clinician.PasswordHash, req.Password); err != nil {
		return nil, errors.Unauthorized(nil)
	}

	accessToken, err := s.jwt.GenerateAccessToken(clinician.ID, clinician.Email, clinician.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwt.GenerateRefreshToken(clinician.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Clinician:    clinician,
	}, nil
}

func (s *Service) ValidateToken(token string) (*pkgauth.TokenClaims, error) {
	return s.jwt.ValidateToken(token)
}
