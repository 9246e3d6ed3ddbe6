package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CapabilityClaims extends the registered claims with the member's capability
// strings, which the middleware checks per route group.
type CapabilityClaims struct {
	Capabilities []string `json:"caps"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new signed token for the member with the given
// capabilities.
func GenerateJWT(memberID string, capabilities []string, secret string, expiryDuration time.Duration, issuer string) (string, time.Time, error) {
	expiresAt := time.Now().Add(expiryDuration)
	claims := CapabilityClaims{
		Capabilities: capabilities,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   memberID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAndValidateJWT parses a token string and validates its signature and
// standard claims, returning the capability claims when valid.
func ParseAndValidateJWT(tokenString string, secretKey string) (*CapabilityClaims, error) {
	claims := &CapabilityClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
