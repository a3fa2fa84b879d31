package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/service"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// ApproverAuthHandler exposes approver session endpoints.
type ApproverAuthHandler struct {
	auth *service.AuthService
}

// NewApproverAuthHandler constructs handler.
func NewApproverAuthHandler(authService *service.AuthService) *ApproverAuthHandler {
	return &ApproverAuthHandler{auth: authService}
}

// Login handles POST /auth/approvers/login.
func (h *ApproverAuthHandler) Login(c *fiber.Ctx) error {
	var req dto.ApproverLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	token, expiresAt, approver, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"approver": dto.ApproverResponse{
				ID:    approver.ID,
				Email: approver.Email,
				Name:  approver.Name,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
		},
	})
}
