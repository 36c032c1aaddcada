package jwt

import (
	"errors"
	"time"

	"kitchenhub/internal/domain/identity"
	"kitchenhub/internal/pkg/config"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

type Claims struct {
	UserID uuid.UUID     `json:"user_id"`
	Role   identity.Role `json:"role"`
	jwtlib.RegisteredClaims
}

// Validator verifies access tokens issued by the external auth service. Token
// issuance and session mechanics live outside this service.
type Validator struct {
	secret   []byte
	duration time.Duration
}

func NewValidator(cfg config.JWTConfig) *Validator {
	return &Validator{
		secret:   []byte(cfg.Secret),
		duration: cfg.Duration,
	}
}

func (v *Validator) ValidateToken(tokenString string) (uuid.UUID, identity.Role, error) {
	token, err := jwtlib.ParseWithClaims(tokenString, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return uuid.Nil, "", ErrExpiredToken
		}
		return uuid.Nil, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, "", ErrInvalidToken
	}

	role, err := identity.NewRole(string(claims.Role))
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}

	return claims.UserID, role, nil
}

// GenerateToken exists for local development and tests.
func (v *Validator) GenerateToken(userID uuid.UUID, role identity.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(v.duration)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
