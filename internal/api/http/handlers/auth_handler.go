package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-service/internal/api/dto"
	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/service"
	apperrors "github.com/spec-kit/hospital-service/pkg/util"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth      *service.AuthService
	directory *service.DirectoryService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, directoryService *service.DirectoryService) *AuthHandler {
	return &AuthHandler{auth: authService, directory: directoryService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := validateRegister(req); err != nil {
		return err
	}

	account, token, exp, err := h.auth.Register(c.Context(), req.Role, service.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Specialization: req.Specialization,
		Phone:          req.Phone,
		Address:        req.Address,
	})
	if err != nil {
		return err
	}

	if req.Role == domain.RoleDoctor && h.directory != nil {
		h.directory.InvalidateDoctors(c.Context())
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"account": accountResponse(account),
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !req.Role.Valid() {
		return apperrors.NewValidationError("role must be doctor or patient", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, token, exp, err := h.auth.Login(c.Context(), req.Role, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": accountResponse(account),
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

func validateRegister(req dto.RegisterRequest) error {
	details := map[string]any{}
	if !req.Role.Valid() {
		details["role"] = "must be doctor or patient"
	}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "required"
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		details["email"] = "valid email required"
	}
	if len(req.Password) < 6 {
		details["password"] = "minimum 6 characters"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid registration payload", details)
	}
	return nil
}

func accountResponse(account *service.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role,
	}
}
