package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
)

const (
	RoleHospital = "hospital"
	RoleCitizen  = "citizen"
	RoleAdmin    = "admin"

	AccessTokenExpiry = 24 * time.Hour
)

var (
	ErrTokenExpired            = errors.New("token expired")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

// TokenClaims struct represents the data in the token. HospitalID is set for
// hospital staff and scopes every ledger operation they perform.
type TokenClaims struct {
	UserID     string    `json:"userId"`
	Role       string    `json:"role"`
	HospitalID string    `json:"hospitalId,omitempty"`
	Expiry     time.Time `json:"expiry"`
}

// TokenManager issues and validates PASETO v2 local tokens.
type TokenManager struct {
	key []byte
	now func() time.Time
}

// NewTokenManager requires a 32 byte symmetric key.
func NewTokenManager(symmetricKey string) (*TokenManager, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("SYMMETRIC_KEY must be 32 bytes long, got %d", len(symmetricKey))
	}
	return &TokenManager{key: []byte(symmetricKey), now: time.Now}, nil
}

// GenerateAccessToken generates an access token for a user.
func (m *TokenManager) GenerateAccessToken(userID, role, hospitalID string) (string, error) {
	return m.GenerateToken(userID, role, hospitalID, AccessTokenExpiry)
}

func (m *TokenManager) GenerateToken(userID, role, hospitalID string, expiry time.Duration) (string, error) {
	claims := TokenClaims{
		UserID:     userID,
		Role:       role,
		HospitalID: hospitalID,
		Expiry:     m.now().Add(expiry),
	}

	token, err := paseto.NewV2().Encrypt(m.key, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ValidateToken validates the given token string and checks for expiry and required roles.
func (m *TokenManager) ValidateToken(tokenString string, requiredRoles ...string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(tokenString, m.key, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	if m.now().After(claims.Expiry) {
		return nil, ErrTokenExpired
	}

	// If no roles are required, any valid token is acceptable
	if len(requiredRoles) == 0 {
		return &claims, nil
	}

	for _, role := range requiredRoles {
		if claims.Role == role {
			return &claims, nil
		}
	}
	return nil, ErrInsufficientPermissions
}
