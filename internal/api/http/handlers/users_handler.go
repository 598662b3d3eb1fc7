package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bountyboard/bounty-service/internal/api/dto"
	"github.com/bountyboard/bounty-service/internal/auth"
	"github.com/bountyboard/bounty-service/internal/service"
	apperrors "github.com/bountyboard/bounty-service/pkg/util"
)

// UsersHandler exposes account and ledger endpoints.
type UsersHandler struct {
	auth   *service.AuthService
	ledger *service.LedgerService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, ledgerService *service.LedgerService) *UsersHandler {
	return &UsersHandler{auth: authService, ledger: ledgerService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Deposit handles PUT /auth/balance.
func (h *UsersHandler) Deposit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	balance, err := h.ledger.Deposit(c.Context(), principal.User.ID, req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BalanceResponse{Balance: balance}})
}

// Profile handles GET /auth/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.ledger.Profile(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProfileResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    user.Role,
		Balance: user.Balance,
	}})
}

// RequestPasswordReset handles POST /auth/password/reset/request.
func (h *UsersHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	token, err := h.auth.RequestPasswordReset(c.Context(), req.Email)
	if err != nil {
		// do not reveal whether the email exists
		return c.JSON(fiber.Map{"data": fiber.Map{"status": "ok"}})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"status":     "ok",
		"token":      token.Token,
		"expires_at": token.ExpiresAt,
	}})
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *UsersHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and new_password required", nil)
	}
	if err := h.auth.ConfirmPasswordReset(c.Context(), req.Token, req.NewPassword); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password updated"}})
}

// ChangePassword handles POST /auth/password/change.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current_password and new_password required", nil)
	}
	if err := h.auth.ChangePassword(c.Context(), principal.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "password updated"}})
}
