// Package order provides domain entities and business logic for the quick-ship
// fulfillment workflow. It implements the Order aggregate root with its label
// lifecycle and the persisted shipment state machine.
//
// The package includes:
//   - Order: The aggregate root holding recipient snapshot, line items, freight
//     selection, booking reference, and shipment state
//   - ShipmentStatus: A state machine for the booking/label workflow
//   - LabelStatus: A forward-only tag describing label availability
//   - FreightSelection: The carrier quote stored on the order for reuse
//   - AuditEntry: An append-only record of workflow transitions
//
// Key business rules:
//   - Shipment state follows NoQuote -> Booked -> LabelPending -> LabelDone | LabelFailed
//   - The label status tag only moves forward and only after a successful label call
//   - A booking reference, once set, is never cleared by the workflow
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
