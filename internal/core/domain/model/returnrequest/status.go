package returnrequest

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a return/exchange request.
//
// A request starts in Submitted. The resolution transitions are owned by the
// fulfillment gateway collaborator; the core only records the final state:
//
//	Submitted ──> Approved | Rejected | Refunded | Exchanged
//
// All resolution states are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Submitted is the initial status of every request.
	Submitted

	// Approved indicates the gateway accepted the request.
	Approved

	// Rejected indicates the gateway declined the request.
	Rejected

	// Refunded indicates a return completed with a refund.
	Refunded

	// Exchanged indicates an exchange was fulfilled.
	Exchanged
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Submitted: "submitted",
		Approved:  "approved",
		Rejected:  "rejected",
		Refunded:  "refunded",
		Exchanged: "exchanged",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Submitted: "submitted",
		Approved:  "approved",
		Rejected:  "rejected",
		Refunded:  "refunded",
		Exchanged: "exchanged",
	}
}

// ParseStatus converts a string representation into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid return request status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid return request status", s))
	}
	return nil
}

// String returns the lowercase name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsResolved reports whether the request has reached a final state.
// Only unresolved (Submitted) requests block their items from appearing
// in another request for the same order.
func (s Status) IsResolved() bool {
	switch s {
	case Approved, Rejected, Refunded, Exchanged:
		return true
	default:
		return false
	}
}
