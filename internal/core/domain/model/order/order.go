package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a customer order in the system. It is the aggregate root that
// manages the order lifecycle from placement through delivery or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Must have at least one line item, each with quantity >= 1 and a frozen unit price
//   - total = subtotal + shippingFee + tax, checked at creation and never recomputed
//   - The tracking log is append-only; its first entry is always Pending, its last
//     entry's status always equals the current status, and timestamps never decrease
//   - Status moves only through transitions validated by the Status state machine
//   - Can only be created through NewOrder or rehydrated through RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods. Orders are never deleted: delivery
// and cancellation are terminal statuses, not removals.
type Order struct {
	id            kernel.UUID
	number        string
	customerID    kernel.UUID
	items         []Item
	subtotal      int64
	shippingFee   int64
	tax           int64
	total         int64
	address       Address
	paymentMethod PaymentMethod
	status        Status
	tracking      []TrackingEvent
	createdAt     time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with a single initial tracking
// entry stamped at createdAt. This is the only way to create a valid Order.
//
// All monetary amounts are in minor currency units. The constructor verifies
// the monetary invariant total = subtotal + shippingFee + tax and rejects
// empty item lists; violations surface as errs.ValueIsInvalidError /
// errs.ValueIsRequiredError so the caller can report an invalid order.
func NewOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	items []Item,
	subtotal, shippingFee, tax, total int64,
	address Address,
	paymentMethod PaymentMethod,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		order.setCustomerID(customerID),
		order.setItems(items),
		order.setAmounts(subtotal, shippingFee, tax, total),
		order.setAddress(address),
		order.setPaymentMethod(paymentMethod),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	initial, err := NewTrackingEvent(Pending, "order placed", createdAt)
	if err != nil {
		return nil, err
	}

	order.status = Pending
	order.tracking = []TrackingEvent{initial}
	return order, nil
}

// RestoreOrder reconstructs an Order from persistence.
//
// Beyond the creation-time checks it revalidates the tracking invariants:
// the log must be non-empty, start with Pending, carry non-decreasing
// timestamps, and its last entry must match the persisted status. A record
// violating any of these indicates corrupted state and is rejected.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customerID kernel.UUID,
	items []Item,
	subtotal, shippingFee, tax, total int64,
	address Address,
	paymentMethod PaymentMethod,
	status Status,
	tracking []TrackingEvent,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		order.setCustomerID(customerID),
		order.setItems(items),
		order.setAmounts(subtotal, shippingFee, tax, total),
		order.setAddress(address),
		order.setPaymentMethod(paymentMethod),
		order.setCreatedAt(createdAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := validateTracking(tracking, status); err != nil {
		return nil, err
	}

	order.status = status
	order.tracking = append([]TrackingEvent(nil), tracking...)
	return order, nil
}

// validateTracking checks the audit-log invariants for a persisted tracking log.
func validateTracking(tracking []TrackingEvent, status Status) error {
	if len(tracking) == 0 {
		return errs.NewValueIsRequiredError("tracking")
	}

	for _, event := range tracking {
		if err := event.Validate(); err != nil {
			return err
		}
	}

	if tracking[0].Status() != Pending {
		return errs.NewValueIsInvalidErrorWithCause("tracking",
			fmt.Errorf("first entry has status %s, want %s", tracking[0].Status(), Pending))
	}

	if last := tracking[len(tracking)-1].Status(); last != status {
		return errs.NewValueIsInvalidErrorWithCause("tracking",
			fmt.Errorf("last entry has status %s but order status is %s", last, status))
	}

	for i := 1; i < len(tracking); i++ {
		if tracking[i].OccurredAt().Before(tracking[i-1].OccurredAt()) {
			return errs.NewValueIsInvalidErrorWithCause("tracking",
				fmt.Errorf("entry %d is timestamped before entry %d", i, i-1))
		}
	}

	return nil
}

// Validate ensures the Order instance was properly constructed through NewOrder
// or RestoreOrder. This prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the immutable human-facing order number.
func (o *Order) Number() string {
	return o.number
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the order's line items in their original sequence.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Subtotal returns the item subtotal in minor currency units.
func (o *Order) Subtotal() int64 {
	return o.subtotal
}

// ShippingFee returns the shipping fee in minor currency units.
func (o *Order) ShippingFee() int64 {
	return o.shippingFee
}

// Tax returns the tax amount in minor currency units.
func (o *Order) Tax() int64 {
	return o.tax
}

// Total returns the frozen order total in minor currency units.
func (o *Order) Total() int64 {
	return o.total
}

// Address returns the shipping address.
func (o *Order) Address() Address {
	return o.address
}

// PaymentMethod returns the recorded payment method tag.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Tracking returns a copy of the append-only tracking log in chronological order.
func (o *Order) Tracking() []TrackingEvent {
	return append([]TrackingEvent(nil), o.tracking...)
}

// LastTrackingEvent returns the most recent tracking entry. Its status always
// equals the order's current status.
func (o *Order) LastTrackingEvent() TrackingEvent {
	return o.tracking[len(o.tracking)-1]
}

// CreatedAt returns the immutable creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveredAt returns the timestamp of the Delivered tracking entry.
// The second return value is false when the order has not been delivered.
func (o *Order) DeliveredAt() (time.Time, bool) {
	for _, event := range o.tracking {
		if event.Status() == Delivered {
			return event.OccurredAt(), true
		}
	}
	return time.Time{}, false
}

// HasItem reports whether the order contains a line item with the given identity.
func (o *Order) HasItem(itemID kernel.UUID) bool {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return true
		}
	}
	return false
}

// Advance requests a transition to the target status.
//
// The transition is validated by Status.TransitionTo: the target must be the
// immediate successor in the fulfillment chain, or Cancelled from a status
// the cancellation policy permits. On acceptance a tracking entry is appended
// and the status updated; on rejection the order is left untouched and the
// error wraps ErrInvalidTransition or ErrTransitionNoOp.
//
// The appended entry's timestamp is clamped to the last entry's timestamp so
// the tracking log stays monotonically non-decreasing even when callers'
// clocks disagree. The accepted entry is returned so callers can persist it.
func (o *Order) Advance(target Status, message string, now time.Time) (TrackingEvent, error) {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return TrackingEvent{}, err
	}

	occurredAt := now
	if last := o.LastTrackingEvent().OccurredAt(); last.After(occurredAt) {
		occurredAt = last
	}

	event, err := NewTrackingEvent(newStatus, message, occurredAt)
	if err != nil {
		return TrackingEvent{}, err
	}

	o.status = newStatus
	o.tracking = append(o.tracking, event)
	return event, nil
}

// Cancel requests a customer-initiated cancellation.
//
// Permitted only while Status.CanCancel() holds (Pending or Confirmed);
// otherwise the request is rejected with ErrInvalidTransition and the order
// is left untouched.
func (o *Order) Cancel(message string, now time.Time) (TrackingEvent, error) {
	return o.Advance(Cancelled, message, now)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setAmounts(subtotal, shippingFee, tax, total int64) error {
	if subtotal < 0 || shippingFee < 0 || tax < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amounts",
			fmt.Errorf("subtotal %d, shipping fee %d, and tax %d must not be negative", subtotal, shippingFee, tax))
	}
	if total != subtotal+shippingFee+tax {
		return errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%d does not equal subtotal %d + shipping fee %d + tax %d", total, subtotal, shippingFee, tax))
	}
	o.subtotal = subtotal
	o.shippingFee = shippingFee
	o.tax = tax
	o.total = total
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}
	o.paymentMethod = paymentMethod
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
