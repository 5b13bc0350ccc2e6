package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the caller context the rest of the service trusts. It is
// produced by the token middleware; no credential checks happen past it.
type Identity struct {
	UserID       string
	IsAdmin      bool
	IsSuperAdmin bool
}

// CanManage reports whether the caller may perform admin-only operations.
func (i Identity) CanManage() bool {
	return i.IsAdmin || i.IsSuperAdmin
}

type Claims struct {
	UserID       string `json:"user_id"`
	IsAdmin      bool   `json:"is_admin"`
	IsSuperAdmin bool   `json:"is_super_admin"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token carrying the caller identity. Issuing tokens
// belongs to the auth service; this is the seam it plugs into, and what the
// tests use.
func GenerateToken(secret []byte, ident Identity, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:       ident.UserID,
		IsAdmin:      ident.IsAdmin,
		IsSuperAdmin: ident.IsSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses a signed token into the identity it carries.
func ValidateToken(secret []byte, tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, errors.New("invalid token")
	}
	return Identity{
		UserID:       claims.UserID,
		IsAdmin:      claims.IsAdmin,
		IsSuperAdmin: claims.IsSuperAdmin,
	}, nil
}
