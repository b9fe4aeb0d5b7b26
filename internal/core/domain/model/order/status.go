package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

var (
	// ErrInvalidTransition is returned when a requested status change does not
	// follow the fulfillment chain, or when cancellation is requested from a
	// status the cancellation policy does not permit.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTransitionNoOp is returned when the requested target equals the current
	// status. The request is rejected without appending a duplicate tracking entry.
	ErrTransitionNoOp = errors.New("order is already in the requested status")
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Shipping ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// The forward chain admits no skipping: each transition must target the
// immediate successor of the current status. Delivered and Cancelled are
// terminal. Cancellation is only reachable from Pending and Confirmed.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first placed.
	Pending

	// Confirmed indicates the order has been accepted for fulfillment.
	Confirmed

	// Preparing indicates the warehouse is picking and packing the order.
	Preparing

	// Shipping indicates the order has been handed to the carrier.
	Shipping

	// Delivered indicates the order reached the customer. Terminal.
	// Only delivered orders are eligible for the return/exchange workflow.
	Delivered

	// Cancelled indicates the order was cancelled before fulfillment. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Shipping:  "shipping",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Shipping:  "shipping",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// ParseStatus converts a string representation into a Status.
// Returns an error for strings that do not name a valid status.
// Used when accepting transition targets from external callers.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Confirmed, Preparing, Shipping, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase name of the status, e.g. "pending".
// Returns "unknown" for invalid status values. Implements fmt.Stringer
// and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
// Delivered and Cancelled are the terminal statuses.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next returns the immediate successor of the status in the forward
// fulfillment chain. The second return value is false for terminal
// statuses, Cancelled, and invalid values.
func (s Status) Next() (Status, bool) {
	switch s {
	case Pending:
		return Confirmed, true
	case Confirmed:
		return Preparing, true
	case Preparing:
		return Shipping, true
	case Shipping:
		return Delivered, true
	default:
		return Unknown, false
	}
}

// CanCancel implements the cancellation policy: customer-initiated
// cancellation is permitted only while the order is Pending or Confirmed.
// Once preparation has started the order must run to delivery.
func (s Status) CanCancel() bool {
	return s == Pending || s == Confirmed
}

// TransitionTo validates a requested transition and returns the new status.
//
// Rules, in evaluation order:
//   - the target must be a valid status
//   - a target equal to the current status is rejected with ErrTransitionNoOp
//   - Cancelled is reachable only from statuses where CanCancel() holds
//   - any other target must be the immediate successor per Next()
//
// Returns (Unknown, error) on rejection; the error wraps ErrTransitionNoOp or
// ErrInvalidTransition so callers can classify with errors.Is. TransitionTo
// is a pure function of (current status, target) and has no side effects.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if target == s {
		return Unknown, fmt.Errorf("%w: %s", ErrTransitionNoOp, s)
	}

	if target == Cancelled {
		if !s.CanCancel() {
			return Unknown, fmt.Errorf("%w: order in status %s can no longer be cancelled", ErrInvalidTransition, s)
		}
		return Cancelled, nil
	}

	next, ok := s.Next()
	if !ok || next != target {
		return Unknown, fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, s, target)
	}

	return target, nil
}
