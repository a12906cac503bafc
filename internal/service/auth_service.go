package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"brickvault/internal/config"
	"brickvault/internal/domain"
)

// Claims represents the JWT claims carried by API bearer tokens. Token
// issuance belongs to the identity service; this service only validates.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
}

// AuthService validates bearer tokens.
type AuthService interface {
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	cfg config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(cfg config.JWTConfig) AuthService {
	return &authService{cfg: cfg}
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithIssuer(s.cfg.Issuer))
	if err != nil || !token.Valid {
		return nil, domain.ErrForbidden
	}

	if claims.UserID == uuid.Nil {
		// Fall back to subject for tokens minted without the custom claim.
		sub, err := uuid.Parse(claims.Subject)
		if err != nil {
			return nil, domain.ErrForbidden
		}
		claims.UserID = sub
	}
	return claims, nil
}
