package token

import (
	"time"

	"session-hub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds dashboard token generation configuration.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// dashboardClaims are the claims the dashboard backend consumes.
type dashboardClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Sid   string `json:"sid"`
	jwt.RegisteredClaims
}

// JWTIssuer mints dashboard tokens for the published user.
// Implements domain.TokenIssuer.
type JWTIssuer struct {
	cfg JWTConfig
}

// NewJWTIssuer creates a new JWT issuer.
func NewJWTIssuer(cfg JWTConfig) *JWTIssuer {
	return &JWTIssuer{cfg: cfg}
}

// IssueDashboardToken generates a signed HS256 token carrying the user's
// actual role, so the dashboard can gate doctor and hospital views.
func (j *JWTIssuer) IssueDashboardToken(user *domain.User, sessionToken string) (string, error) {
	now := time.Now()
	claims := dashboardClaims{
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
		Sid:   sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.cfg.Issuer,
			Audience:  jwt.ClaimStrings{j.cfg.Audience},
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.cfg.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.Secret))
	if err != nil {
		return "", domain.ErrTokenGeneration
	}
	return signed, nil
}
