package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/intake"
	"github.com/spec-kit/triage-service/internal/service"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// TicketsHandler exposes ticket intake and pipeline endpoints.
type TicketsHandler struct {
	triage *service.TriageService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(triageService *service.TriageService) *TicketsHandler {
	return &TicketsHandler{triage: triageService}
}

// SubmitTicket POST /tickets.
func (h *TicketsHandler) SubmitTicket(c *fiber.Ctx) error {
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := intake.NewTicket(intake.Submission{
		MerchantID:  req.MerchantID,
		Description: req.Description,
		Severity:    req.Severity,
	})
	if err != nil {
		return err
	}

	outcome, err := h.triage.Process(c.UserContext(), ticket)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": triageOutcomeResponse(outcome)})
}

// ProcessPending POST /tickets/process-pending.
func (h *TicketsHandler) ProcessPending(c *fiber.Ctx) error {
	outcomes, err := h.triage.ProcessBacklog(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TriageOutcomeResponse, 0, len(outcomes))
	for i := range outcomes {
		items = append(items, triageOutcomeResponse(&outcomes[i]))
	}
	return c.JSON(fiber.Map{"data": dto.BacklogRunResponse{
		Processed: len(items),
		Outcomes:  items,
	}})
}

func triageOutcomeResponse(outcome *service.TriageOutcome) dto.TriageOutcomeResponse {
	resp := dto.TriageOutcomeResponse{
		Ticket:          outcome.Ticket,
		Analysis:        outcome.Analysis,
		Decision:        outcome.Decision,
		ApprovalReasons: outcome.ApprovalReasons,
		PendingApproval: outcome.Suspended,
	}
	if outcome.Record != nil {
		result := outcome.Record.Result
		approved := outcome.Record.Approved
		resp.Result = &result
		resp.RecordID = outcome.Record.ID
		resp.Approved = &approved
	}
	return resp
}
