package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/http/handlers"
	"github.com/spec-kit/triage-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Approvals      *handlers.ApprovalsHandler
	Reports        *handlers.ReportsHandler
	ApproverAuth   *handlers.ApproverAuthHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/approvers/login", cfg.ApproverAuth.Login)

	app.Post("/tickets", cfg.Tickets.SubmitTicket)
	app.Post("/tickets/process-pending", cfg.Tickets.ProcessPending)

	approvals := app.Group("/approvals", cfg.AuthMiddleware.Handle)
	approvals.Get("", cfg.Approvals.ListPending)
	approvals.Post("/:ticket_id/approve", cfg.Approvals.Approve)
	approvals.Post("/:ticket_id/reject", cfg.Approvals.Reject)

	app.Get("/records", cfg.Reports.ListRecords)
	app.Get("/reports/summary", cfg.Reports.Summary)
	app.Get("/reports/export", cfg.Reports.Export)
}
