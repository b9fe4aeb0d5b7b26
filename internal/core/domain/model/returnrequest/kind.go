package returnrequest

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Kind distinguishes a return (money back) from an exchange (replacement item).
type Kind string

const (
	KindReturn   Kind = "return"
	KindExchange Kind = "exchange"
)

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	kind := Kind(s)
	if err := kind.Validate(); err != nil {
		return "", err
	}
	return kind, nil
}

// Validate checks that the kind is one of the supported values.
func (k Kind) Validate() error {
	switch k {
	case KindReturn, KindExchange:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%q is not a valid return request kind", string(k)))
	}
}

// String returns the wire representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Reason captures why the customer is returning or exchanging the items.
type Reason string

const (
	ReasonDefective      Reason = "defective"
	ReasonWrongItem      Reason = "wrong_item"
	ReasonNotAsDescribed Reason = "not_as_described"
	ReasonChangedMind    Reason = "changed_mind"
	ReasonSizeIssue      Reason = "size_issue"
	ReasonOther          Reason = "other"
)

// ParseReason converts a string into a Reason.
func ParseReason(s string) (Reason, error) {
	reason := Reason(s)
	if err := reason.Validate(); err != nil {
		return "", err
	}
	return reason, nil
}

// Validate checks that the reason is one of the supported values.
func (r Reason) Validate() error {
	switch r {
	case ReasonDefective, ReasonWrongItem, ReasonNotAsDescribed, ReasonChangedMind, ReasonSizeIssue, ReasonOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("reason",
			fmt.Errorf("%q is not a valid return request reason", string(r)))
	}
}

// String returns the wire representation of the reason.
func (r Reason) String() string {
	return string(r)
}
