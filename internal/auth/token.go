// Package auth implements credential verification and the role and ownership
// gates that guard every mutation.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"pressroom/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the credential lifetime used when no override is configured.
const DefaultTokenTTL = time.Hour

const tokenIssuer = "pressroom-api"

// Identity is the authenticated actor resolved from a bearer credential.
type Identity struct {
	UserID uint
	Role   models.Role
}

// TokenService issues and verifies bearer credentials carrying identity and
// role. The signing secret is injected at construction and never mutated at
// runtime.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService from an explicit secret and lifetime.
// It fails if the secret is absent; there is no fallback default.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token for the given user and role, expiring after
// the configured lifetime.
func (ts *TokenService) Issue(userID uint, role models.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"role": role.String(),
		"iss":  tokenIssuer,
		"exp":  now.Add(ts.ttl).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ts.secret)
}

// errInvalidToken is the single externally observable verification failure.
// Malformed, expired, and badly-signed tokens all collapse into it so callers
// cannot distinguish why a credential was rejected.
func errInvalidToken() *models.AppError {
	return models.NewUnauthenticatedError("Invalid or expired token")
}

// Verify parses and validates a bearer token and returns the identity it
// carries. Every failure mode surfaces as the same Unauthenticated error.
func (ts *TokenService) Verify(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, errInvalidToken()
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ts.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errInvalidToken()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errInvalidToken()
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, errInvalidToken()
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return Identity{}, errInvalidToken()
	}

	roleClaim, ok := claims["role"].(string)
	if !ok {
		return Identity{}, errInvalidToken()
	}
	role := models.Role(roleClaim)
	if !role.Valid() {
		return Identity{}, errInvalidToken()
	}

	return Identity{UserID: uint(userID), Role: role}, nil
}

// TTL returns the configured credential lifetime.
func (ts *TokenService) TTL() time.Duration {
	return ts.ttl
}

// generateJTI creates a unique token ID.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
