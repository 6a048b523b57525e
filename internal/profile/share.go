package profile

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidShareToken is returned for any malformed, tampered or otherwise
// undecodable share token. Decoding fails closed: no partial profile is ever
// returned.
var ErrInvalidShareToken = errors.New("invalid share token")

type shareClaims struct {
	Profile UserProfile `json:"profile"`
	jwt.RegisteredClaims
}

// EncodeShareToken serializes a profile into a compact signed token suitable
// for embedding in a share link. The payload is plain JSON inside a JWT, so
// non-ASCII city and dislikes text round-trips exactly.
func EncodeShareToken(p UserProfile, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, shareClaims{
		Profile: p,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, nil
}

// DecodeShareToken verifies and decodes a share token back into a profile.
func DecodeShareToken(tokenStr string, secret []byte) (*UserProfile, error) {
	claims := &shareClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidShareToken
	}
	if err := claims.Profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShareToken, err)
	}
	return &claims.Profile, nil
}
