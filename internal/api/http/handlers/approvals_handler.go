package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/auth"
	"github.com/spec-kit/triage-service/internal/service"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// ApprovalsHandler exposes the human approval boundary.
type ApprovalsHandler struct {
	triage *service.TriageService
}

// NewApprovalsHandler constructs handler.
func NewApprovalsHandler(triageService *service.TriageService) *ApprovalsHandler {
	return &ApprovalsHandler{triage: triageService}
}

// ListPending GET /approvals.
func (h *ApprovalsHandler) ListPending(c *fiber.Ctx) error {
	pending, err := h.triage.Pending(c.UserContext())
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	items := make([]dto.PendingApprovalResponse, 0, len(pending))
	for _, entry := range pending {
		items = append(items, dto.PendingApprovalResponse{
			TicketID:    entry.TicketID,
			Ticket:      entry.Ticket,
			Analysis:    entry.Analysis,
			Decision:    entry.Decision,
			Reasons:     entry.Reasons,
			RequestedAt: entry.RequestedAt,
			AgeSeconds:  int64(now.Sub(entry.RequestedAt).Seconds()),
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Approve POST /approvals/:ticket_id/approve.
func (h *ApprovalsHandler) Approve(c *fiber.Ctx) error {
	return h.resolve(c, true)
}

// Reject POST /approvals/:ticket_id/reject.
func (h *ApprovalsHandler) Reject(c *fiber.Ctx) error {
	return h.resolve(c, false)
}

func (h *ApprovalsHandler) resolve(c *fiber.Ctx, approved bool) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Approver == nil {
		return apperrors.NewUnauthorized("approver required")
	}
	ticketID := c.Params("ticket_id")
	if ticketID == "" {
		return apperrors.NewValidationError("ticket_id required", nil)
	}

	record, err := h.triage.Resolve(c.UserContext(), ticketID, approved, principal.Approver.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ResolveApprovalResponse{Record: *record}})
}
