package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT validation errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

// Claims carries the session claims embedded in an admin token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTConfig holds the shared signing configuration.
type JWTConfig struct {
	SecretKey  string
	Issuer     string
	Audience   string
	ExpiryTime time.Duration
}

// JWTGenerator issues HS256 session tokens with an absolute expiry.
type JWTGenerator struct {
	cfg JWTConfig
}

// NewJWTGenerator creates a token generator.
func NewJWTGenerator(cfg JWTConfig) (*JWTGenerator, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}
	if cfg.ExpiryTime <= 0 {
		cfg.ExpiryTime = 24 * time.Hour
	}
	return &JWTGenerator{cfg: cfg}, nil
}

// GenerateToken issues a signed token for the given role. The jti is unique
// per token so that individual sessions can be revoked.
func (g *JWTGenerator) GenerateToken(role string, now time.Time) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    g.cfg.Issuer,
			Audience:  jwt.ClaimStrings{g.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.cfg.ExpiryTime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(g.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ExpirySeconds reports the configured token lifetime in whole seconds.
func (g *JWTGenerator) ExpirySeconds() int64 {
	return int64(g.cfg.ExpiryTime / time.Second)
}

// JWTValidator verifies session tokens.
type JWTValidator struct {
	cfg JWTConfig
}

// NewJWTValidator creates a token validator.
func NewJWTValidator(cfg JWTConfig) (*JWTValidator, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is required")
	}
	return &JWTValidator{cfg: cfg}, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(v.cfg.SecretKey), nil
	},
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrInvalidToken
		}
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
