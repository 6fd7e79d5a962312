package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workdesk-service/internal/api/dto"
	"github.com/spec-kit/workdesk-service/internal/service"
	apperrors "github.com/spec-kit/workdesk-service/pkg/util"
)

// AccountHandler serves account administration.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler constructs the handler.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// List returns all accounts.
func (h *AccountHandler) List(c *fiber.Ctx) error {
	accounts, err := h.accounts.List(c.UserContext())
	if err != nil {
		return err
	}
	result := make([]*dto.AccountResponse, len(accounts))
	for i := range accounts {
		result[i] = dto.NewAccountResponse(&accounts[i])
	}
	return dataResponse(c, fiber.StatusOK, result)
}

// Get returns one account by id.
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	account, err := h.accounts.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, dto.NewAccountResponse(account))
}

// GetByEmail resolves an account by email address.
func (h *AccountHandler) GetByEmail(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return apperrors.NewValidationError("email parameter is required", nil)
	}
	account, err := h.accounts.GetByEmail(c.UserContext(), email)
	if err != nil {
		return apperrors.MapError(err)
	}
	return dataResponse(c, fiber.StatusOK, dto.NewAccountResponse(account))
}

// Create stores a new account.
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var req dto.AccountRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	account, err := h.accounts.Create(c.UserContext(), service.AccountInput{
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

// Update rewrites an account.
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.AccountRequest
	if err := dto.ParseAndValidate(c, &req); err != nil {
		return err
	}
	account, err := h.accounts.Update(c.UserContext(), id, service.AccountInput{
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
	return dataResponse(c, fiber.StatusOK, dto.NewAccountResponse(account))
}

// Delete removes an account.
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.accounts.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return dataResponse(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
