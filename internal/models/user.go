package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleAgent Role = "agent"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleAgent:
		return true
	}

	return false
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// for registration; password complexity is enforced by the custom
// "password" validator tag (min 8, one uppercase, one symbol)
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
	FirstName string `json:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" validate:"omitempty,max=30"`
	Role      Role   `json:"role" validate:"omitempty,oneof=admin staff agent"`
}

// for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// for login response
type LoginResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      Role      `json:"role"`
	Tokens    TokenPair `json:"tokens"`
	ExpiresIn int       `json:"expires_in"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWT claims structure
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	TokenType string    `json:"token_type"`
	jwt.RegisteredClaims
}
