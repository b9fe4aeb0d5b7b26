package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentMethod tags how the customer pays for the order. The core records
// the tag only; payment capture is handled by an external collaborator.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentCard           PaymentMethod = "card"
	PaymentWallet         PaymentMethod = "wallet"
)

// ParsePaymentMethod converts a string into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	method := PaymentMethod(s)
	if err := method.Validate(); err != nil {
		return "", err
	}
	return method, nil
}

// Validate checks that the payment method is one of the supported tags.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentCashOnDelivery, PaymentCard, PaymentWallet:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%q is not a valid payment method", string(m)))
	}
}

// String returns the wire representation of the payment method.
func (m PaymentMethod) String() string {
	return string(m)
}
