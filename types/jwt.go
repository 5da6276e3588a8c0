package types

import "github.com/golang-jwt/jwt/v5"

// Session roles carried in JWT claims.
const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// Claims represents the JWT claims
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
