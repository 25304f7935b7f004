package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims carries the identity extracted from a verified token.
type TokenClaims struct {
	ClinicianID uuid.UUID `json:"clinician_id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
}

type JWTService interface {
	GenerateAccessToken(clinicianID uuid.UUID, email, role string) (string, error)
	GenerateRefreshToken(clinicianID uuid.UUID) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
}

type JWTConfig struct {
	Secret             string
	RefreshSecret      string
	ExpiryHours        int
	RefreshExpiryHours int
}

type jwtService struct {
	cfg JWTConfig
}

func NewJWTService(cfg JWTConfig) JWTService {
	if cfg.ExpiryHours <= 0 {
		cfg.ExpiryHours = 24
	}
	if cfg.RefreshExpiryHours <= 0 {
		cfg.RefreshExpiryHours = 24 * 7
	}
	return &jwtService{cfg: cfg}
}

func (s *jwtService) GenerateAccessToken(clinicianID uuid.UUID, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   clinicianID.String(),
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Duration(s.cfg.ExpiryHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) GenerateRefreshToken(clinicianID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": clinicianID.String(),
		"iat": now.Unix(),
		"exp": now.Add(time.Duration(s.cfg.RefreshExpiryHours) * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	sub, _ := claims["sub"].(string)
	clinicianID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &TokenClaims{
		ClinicianID: clinicianID,
		Email:       email,
		Role:        role,
	}, nil
}
