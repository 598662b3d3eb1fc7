package dto

import (
	"time"

	"github.com/bountyboard/bounty-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     domain.UserRole `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DepositRequest payload for balance top-ups.
type DepositRequest struct {
	Amount int64 `json:"amount"`
}

// BalanceResponse returns the balance after a deposit.
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// ProfileResponse is the account view returned to its owner.
type ProfileResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Role    domain.UserRole `json:"role"`
	Balance int64           `json:"balance"`
}

// PasswordResetRequest payload.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// PasswordChangeRequest payload.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
