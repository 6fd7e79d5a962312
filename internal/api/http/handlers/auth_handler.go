package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workdesk-service/internal/api/dto"
	"github.com/spec-kit/workdesk-service/internal/auth"
	"github.com/spec-kit/workdesk-service/internal/service"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// AuthHandler serves registration, login and password recovery.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates an account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	account, err := h.authService.Register(c.UserContext(), service.RegisterInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
		Image:    req.Image,
		Phone:    req.Phone,
		RoleID:   req.RoleID,
	})
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusCreated, dto.NewAccountResponse(account))
}

// Login issues a JWT for valid credentials.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"account":    dto.NewAccountResponse(result.Account),
	})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	account := auth.AccountFromContext(c)
	if account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	return dataResponse(c, fiber.StatusOK, dto.NewAccountResponse(account))
}

// ChangePassword rotates the caller's password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	account := auth.AccountFromContext(c)
	if account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ChangePasswordRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.authService.ChangePassword(c.UserContext(), account.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"updated": true})
}

// ForgotPassword issues a reset token.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	token, err := h.authService.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusCreated, fiber.Map{
		"token":      token.Token,
		"expires_at": token.ExpiresAt,
	})
}

// ResetPassword consumes a reset token.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.authService.ResetPassword(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"updated": true})
}
