package model

import (
	"time"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusLocked   = "locked"
)

// User represents a staff member of the clinic
type User struct {
	Base
	Email            string     `json:"email" db:"email"`
	Name             string     `json:"name" db:"name"`
	Password         string     `json:"password,omitempty" db:"-"`
	PasswordHash     string     `json:"-" db:"password_hash"`
	Role             string     `json:"role" db:"role"`
	Department       string     `json:"department" db:"department"`
	Phone            *string    `json:"phone" db:"phone"`
	Status           string     `json:"status" db:"status"`
	LastLoginAt      *time.Time `json:"last_login_at" db:"last_login_at"`
	LoginAttempts    int        `json:"login_attempts" db:"login_attempts"`
	LastLoginAttempt time.Time  `json:"last_login_attempt" db:"last_login_attempt"`
}

// CreateUserRequest represents staff account creation parameters
type CreateUserRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"required,staffrole"`
	Department string `json:"department" binding:"required"`
}

// UpdateUserRequest represents staff account update parameters
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Status     *string `json:"status" binding:"omitempty,oneof=active inactive locked"`
	Role       *string `json:"role" binding:"omitempty,staffrole"`
}

type UserFilters struct {
	Role       string `json:"role" form:"role"`
	Department string `json:"department" form:"department"`
	Status     string `json:"status" form:"status"`
	SearchTerm string `json:"search_term" form:"search_term"`
}
