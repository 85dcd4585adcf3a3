package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the token_type claim
const (
	AccessTokenType  = "access"
	RefreshTokenType = "refresh"
)

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
}
