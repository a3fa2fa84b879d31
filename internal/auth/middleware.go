package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/repository"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated approver.
type Principal struct {
	Approver *domain.Approver
}

// AuthMiddleware validates bearer tokens and loads the approver principal.
type AuthMiddleware struct {
	tokens    *TokenManager
	approvers repository.ApproverRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, approvers repository.ApproverRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, approvers: approvers}
}

// Handle enforces authentication for the approval boundary.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	approver, err := m.approvers.GetByID(c.Context(), claims.ApproverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("approver not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Approver: approver})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated approver.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
