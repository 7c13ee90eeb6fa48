package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer is the iss value stamped on every access token.
const TokenIssuer = "laundry-service-server"

// AccessClaims is the payload of a customer or admin access token. Only the
// user ID travels in the token; role and suspension state are re-read from
// the users table on every request.
type AccessClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// NewAccessClaims wraps a user ID in the standard registered claims
func NewAccessClaims(userID uint, ttl time.Duration) *AccessClaims {
	now := time.Now()
	return &AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
		},
	}
}
