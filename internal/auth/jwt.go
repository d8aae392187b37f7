// Package auth validates staff bearer tokens. Token issuance lives in the
// identity service; this side only parses claims into an actor.
package auth

import (
	"errors"
	"strconv"

	"github.com/Domenick1991/courtbooking/internal/domain"
	jwt "github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Sub      string `json:"sub"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func ParseValidate(secret, tokenStr string) (*domain.User, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, errors.New("invalid token")
	}

	id, err := strconv.ParseInt(c.Sub, 10, 64)
	if err != nil {
		return nil, errors.New("invalid subject claim")
	}
	role := domain.UserRole(c.Role)
	if role != domain.UserRoleAdmin && role != domain.UserRoleReception {
		return nil, errors.New("unknown role claim")
	}

	return &domain.User{ID: id, Username: c.Username, Role: role}, nil
}
