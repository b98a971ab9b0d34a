package auth

import (
	"crypto/subtle"
	"sync"
	"time"

	apperrors "agentdir/pkg/errors"
)

// adminRole is the only role the directory knows; the admin surface is gated
// on holding any valid session token.
const adminRole = "admin"

// Gate is the boundary capability check consulted before any mutation. It
// issues session tokens against a single admin secret and validates them
// until their absolute expiry or an explicit logout.
type Gate struct {
	secret    string
	generator *JWTGenerator
	validator *JWTValidator

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> token expiry
	now     func() time.Time
}

// NewGate creates a gate over the given admin secret and signing config.
func NewGate(adminSecret string, cfg JWTConfig) (*Gate, error) {
	generator, err := NewJWTGenerator(cfg)
	if err != nil {
		return nil, err
	}
	validator, err := NewJWTValidator(cfg)
	if err != nil {
		return nil, err
	}
	return &Gate{
		secret:    adminSecret,
		generator: generator,
		validator: validator,
		revoked:   make(map[string]time.Time),
		now:       time.Now,
	}, nil
}

// WithClock overrides the gate clock.
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// Login exchanges the admin secret for a session token. The comparison is
// constant-time; a wrong secret is an unauthorized error, never a panic or a
// timing oracle.
func (g *Gate) Login(secret string) (string, error) {
	if g.secret == "" {
		return "", apperrors.NewUnauthorizedError("admin login is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(g.secret)) != 1 {
		return "", apperrors.NewUnauthorizedError("invalid admin secret")
	}
	token, err := g.generator.GenerateToken(adminRole, g.now())
	if err != nil {
		return "", apperrors.NewInternalError("failed to issue session token").WithCause(err)
	}
	return token, nil
}

// IsAuthenticated reports whether the token is a live admin session: valid
// signature, not past its absolute expiry and not revoked.
func (g *Gate) IsAuthenticated(token string) bool {
	claims, err := g.validator.ValidateToken(token)
	if err != nil {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.pruneLocked()
	_, revoked := g.revoked[claims.ID]
	return !revoked
}

// Logout revokes the token's session until its expiry passes. Unknown or
// already-invalid tokens are a no-op.
func (g *Gate) Logout(token string) {
	claims, err := g.validator.ValidateToken(token)
	if err != nil {
		return
	}

	expiry := g.now().Add(g.generator.cfg.ExpiryTime)
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.revoked[claims.ID] = expiry
	g.pruneLocked()
}

// ExpirySeconds reports the session lifetime in whole seconds.
func (g *Gate) ExpirySeconds() int64 {
	return g.generator.ExpirySeconds()
}

// pruneLocked drops revocation entries whose tokens have expired anyway.
// Caller holds g.mu.
func (g *Gate) pruneLocked() {
	now := g.now()
	for jti, expiry := range g.revoked {
		if now.After(expiry) {
			delete(g.revoked, jti)
		}
	}
}
