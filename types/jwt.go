package types

import "github.com/golang-jwt/jwt/v5"

// Claims represents the JWT claims carried by admin tokens.
type Claims struct {
	AdminID uint   `json:"admin_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}
