// Package http exposes the quick-ship workflow over a REST API.
package http

import (
	"errors"
	"net/http"
	"time"

	"quickship/internal/core/application/usecases/commands"
	"quickship/internal/core/application/usecases/queries"
	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/services"
	"quickship/internal/core/ports"
	"quickship/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	processQuickShipHandler      commands.ProcessQuickShipCommandHandler
	getPendingLabelOrdersHandler queries.GetPendingLabelOrdersQueryHandler
	getOrderAuditHandler         queries.GetOrderAuditQueryHandler
	tenantID                     string
}

// NewServer creates a new HTTP server with the required command and query
// handlers. The tenant id scopes every quick-ship invocation.
func NewServer(
	processQuickShipHandler commands.ProcessQuickShipCommandHandler,
	getPendingLabelOrdersHandler queries.GetPendingLabelOrdersQueryHandler,
	getOrderAuditHandler queries.GetOrderAuditQueryHandler,
	tenantID string,
) *Server {
	return &Server{
		processQuickShipHandler:      processQuickShipHandler,
		getPendingLabelOrdersHandler: getPendingLabelOrdersHandler,
		getOrderAuditHandler:         getOrderAuditHandler,
		tenantID:                     tenantID,
	}
}

// RegisterRoutes attaches the API endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders/:orderID/quick-ship", s.ProcessQuickShip)
	e.GET("/api/v1/orders/pending-label", s.GetPendingLabelOrders)
	e.GET("/api/v1/orders/:orderID/audit", s.GetOrderAudit)
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// QuickShipResponse is the successful quick-ship outcome.
type QuickShipResponse struct {
	BookingRef string   `json:"booking_ref"`
	LabelURL   string   `json:"label_url,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// PendingLabelOrder is one row of the pending-label list.
type PendingLabelOrder struct {
	ID             string  `json:"id"`
	ExternalRef    string  `json:"external_ref"`
	RecipientName  string  `json:"recipient_name"`
	BookingRef     string  `json:"booking_ref"`
	ShipmentStatus string  `json:"shipment_status"`
	CarrierName    string  `json:"carrier_name,omitempty"`
	FreightPrice   float64 `json:"freight_price,omitempty"`
}

// AuditEntry is one row of an order's audit trail.
type AuditEntry struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Text       string    `json:"text"`
}

// ProcessQuickShip handles POST /api/v1/orders/:orderID/quick-ship - runs the
// quote-to-label workflow for the order.
func (s *Server) ProcessQuickShip(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	cmd, err := commands.NewProcessQuickShipCommand(orderID, s.tenantID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	result, err := s.processQuickShipHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		code := statusForWorkflowError(err)
		return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
	}

	return ctx.JSON(http.StatusOK, QuickShipResponse{
		BookingRef: result.BookingRef,
		LabelURL:   result.LabelURL,
		Warnings:   result.Warnings,
	})
}

// GetPendingLabelOrders handles GET /api/v1/orders/pending-label - lists
// booked orders still awaiting a label, oldest first.
func (s *Server) GetPendingLabelOrders(ctx echo.Context) error {
	query := queries.NewGetPendingLabelOrdersQuery()

	pending, err := s.getPendingLabelOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve pending label orders",
		})
	}

	response := make([]PendingLabelOrder, len(pending))
	for i, row := range pending {
		response[i] = PendingLabelOrder{
			ID:             row.ID.String(),
			ExternalRef:    row.ExternalRef,
			RecipientName:  row.RecipientName,
			BookingRef:     row.BookingRef,
			ShipmentStatus: row.ShipmentStatus,
			CarrierName:    row.CarrierName,
			FreightPrice:   row.FreightPrice,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderAudit handles GET /api/v1/orders/:orderID/audit - returns the
// order's audit trail, oldest entry first.
func (s *Server) GetOrderAudit(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + err.Error(),
		})
	}

	query, err := queries.NewGetOrderAuditQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	entries, err := s.getOrderAuditHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order audit trail",
		})
	}

	response := make([]AuditEntry, len(entries))
	for i, entry := range entries {
		response[i] = AuditEntry{
			ID:         entry.ID.String(),
			OccurredAt: entry.OccurredAt,
			Text:       entry.Text,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// statusForWorkflowError maps quick-ship failures onto HTTP statuses. The
// order of checks matters: a validation sentinel wrapped inside a provider
// error must not shadow the outer classification.
func statusForWorkflowError(err error) int {
	switch {
	case errors.Is(err, commands.ErrShipmentInProgress),
		errors.Is(err, services.ErrBlockedCarrier):
		return http.StatusConflict
	case errors.Is(err, services.ErrNoValidQuote):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrProviderFailure):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
