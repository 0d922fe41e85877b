package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest holds the payload for creating an account.
// Password is optional: an absent password creates a passwordless account.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=64"`
	Password    string `json:"password" validate:"omitempty,max=128"`
	DisplayName string `json:"display_name" validate:"omitempty,max=128"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        UserInfo  `json:"user"`
	IssuedAt    time.Time `json:"issued_at"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Role        UserRole `json:"role"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Username string   `json:"username"`
	jwt.RegisteredClaims
}

// CanModify reports whether the token holder may mutate an entity created by creatorID.
// Admins may mutate anything, regular users only their own records.
func (c *JWTClaims) CanModify(creatorID string) bool {
	if c == nil {
		return false
	}
	return c.Role == RoleAdmin || c.UserID == creatorID
}
