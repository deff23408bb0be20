package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/RIPRED14/lotfiv7-sub001/internal/config"
	"github.com/RIPRED14/lotfiv7-sub001/pkg/common/code"
)

// Role separates coordinators, who manage forms and planning, from
// technicians, who enter readings.
type Role string

const (
	RoleCoordinator Role = "coordinator"
	RoleTechnician  Role = "technician"
)

type Claims struct {
	UserID string `json:"uid"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Site   string `json:"site,omitempty"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.Global().Auth.JWTSecret)
}

// IssueToken signs a token for the given user. Used by the login view
// and by tests.
func IssueToken(claims *Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, code.UnLogin.WithMsg("unexpected signing method")
		}
		return secret(), nil
	})
	if err != nil || !token.Valid {
		return nil, code.UnLogin.WithErr(err)
	}
	return claims, nil
}
