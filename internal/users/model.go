package users

import (
	"time"

	"resume-api/internal/shared/auth"
)

// User is an account identified by email. Role decides write access;
// the password hash is stored but not consulted by token issuance.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
