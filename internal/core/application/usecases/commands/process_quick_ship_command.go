package commands

import (
	"errors"

	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/pkg/guard"
)

var (
	ErrProcessQuickShipCommandIsNotConstructed = errors.New(
		"ProcessQuickShipCommand must be created via NewProcessQuickShipCommand constructor",
	)
	ErrTenantIDIsRequired = errors.New("tenant id is required")
)

// ProcessQuickShipCommand represents a request to run the quote-to-label
// workflow for a single order: select a freight option, book the shipment
// and drive label issuance.
//
// Example:
//
//	orderID, _ := kernel.UUIDFromString(rawID)
//	cmd, err := NewProcessQuickShipCommand(orderID, tenantID)
//	if err != nil {
//	    return fmt.Errorf("invalid quick-ship request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("quick-ship failed: %w", err)
//	}
//	fmt.Printf("Order booked as %s", result.BookingRef)
type ProcessQuickShipCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	tenantID string

	guard guard.ConstructorGuard
}

// NewProcessQuickShipCommand creates a command to run quick-ship for an order.
// Validates that the order ID is a valid UUID and the tenant ID is not empty.
func NewProcessQuickShipCommand(orderID kernel.UUID, tenantID string) (ProcessQuickShipCommand, error) {
	command := ProcessQuickShipCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setTenantID(tenantID),
	); err != nil {
		return ProcessQuickShipCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProcessQuickShipCommandIsNotConstructed if validation fails.
func (c ProcessQuickShipCommand) Validate() error {
	return c.guard.Validate(ErrProcessQuickShipCommandIsNotConstructed)
}

// OrderID returns the unique identifier of the order to process.
func (c ProcessQuickShipCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TenantID returns the tenant whose carrier blocklist applies.
func (c ProcessQuickShipCommand) TenantID() string {
	return c.tenantID
}

func (c *ProcessQuickShipCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessQuickShipCommand) setTenantID(tenantID string) error {
	if tenantID == "" {
		return ErrTenantIDIsRequired
	}

	c.tenantID = tenantID
	return nil
}
