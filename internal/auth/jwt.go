package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated identity derived from a verified
// token. A nil *Principal means anonymous.
type Principal struct {
	ID   string
	Role string
	Name string
}

// Claims represents the JWT payload carried by issued credentials.
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Issue signs an HS256 token embedding the principal, valid for ttl.
func Issue(p Principal, issuer, key string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := Claims{
		ID:   p.ID,
		Role: p.Role,
		Name: p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Parse validates a token and returns its claims.
func Parse(tokenStr, key, issuer string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(key), nil
	})
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if issuer != "" && claims.Issuer != issuer {
		return Claims{}, errors.New("issuer mismatch")
	}
	return *claims, nil
}

// Resolve turns raw bearer text into a principal. Malformed, expired
// or unverifiable tokens resolve to anonymous rather than an error;
// downstream code treats every authentication failure the same way.
func Resolve(tokenStr, key, issuer string) *Principal {
	if tokenStr == "" {
		return nil
	}
	claims, err := Parse(tokenStr, key, issuer)
	if err != nil {
		return nil
	}
	return &Principal{ID: claims.ID, Role: claims.Role, Name: claims.Name}
}
