// Package order provides domain entities and business logic for order lifecycle
// management in the fulfillment system. It implements the Order aggregate root
// with an auditable tracking timeline and validated state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items, money,
//     shipping address, and the append-only tracking log
//   - Status: A state machine that enforces valid status transitions and the
//     cancellation policy
//   - TrackingEvent: An immutable, timestamped audit record of a status change
//   - Item, Address, PaymentMethod: Value objects frozen at order time
//
// Key business rules:
//   - Status follows the chain pending -> confirmed -> preparing -> shipping ->
//     delivered with no skipping; delivered and cancelled are terminal
//   - Customer cancellation is only permitted from pending or confirmed
//   - total = subtotal + shippingFee + tax is checked at creation and frozen
//   - The tracking log is append-only with non-decreasing timestamps, and its
//     last entry always matches the order's current status
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
