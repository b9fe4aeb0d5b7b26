package returnrequest

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ReturnWindow is how long after delivery a return/exchange request may be
// opened. The boundary is inclusive: a request at exactly fourteen days is
// still accepted.
const ReturnWindow = 14 * 24 * time.Hour

// MaxAttachments caps the number of image references per request.
const MaxAttachments = 5

var (
	// ErrReturnRequestIsNotConstructed is returned when a ReturnRequest was not
	// created through Open or RestoreReturnRequest.
	ErrReturnRequestIsNotConstructed = errors.New(
		"ReturnRequest must be created via Open or RestoreReturnRequest")

	// ErrNotEligible is returned when the owning order is not in delivered status.
	ErrNotEligible = errors.New("order is not eligible for return")

	// ErrWindowExpired is returned when the return window has closed.
	ErrWindowExpired = errors.New("return window has expired")

	// ErrInvalidSelection is returned when the selected items do not form a
	// non-empty subset of the order's line items, or the description is empty.
	ErrInvalidSelection = errors.New("invalid item selection")

	// ErrTooManyAttachments is returned when more than MaxAttachments image
	// references are provided.
	ErrTooManyAttachments = errors.New("too many attachments")

	// ErrItemsAlreadyRequested is returned when a selected item is already part
	// of another unresolved request for the same order.
	ErrItemsAlreadyRequested = errors.New("item is already part of an open return request")

	// ErrAlreadyResolved is returned when resolving a request that has already
	// reached a final state.
	ErrAlreadyResolved = errors.New("return request is already resolved")
)

// ReturnRequest is a return/exchange sub-workflow record opened against a
// delivered order. It references a subset of the order's line items and is
// immutable once submitted, except for recording the final resolution.
type ReturnRequest struct {
	id          kernel.UUID
	orderID     kernel.UUID
	itemIDs     []kernel.UUID
	kind        Kind
	reason      Reason
	description string
	attachments []string
	status      Status
	createdAt   time.Time

	isConstructed bool
}

// Open validates the return/exchange preconditions against the owning order
// and creates a ReturnRequest in Submitted status.
//
// Preconditions, checked in order with the first failure winning:
//  1. the order's status is exactly delivered (ErrNotEligible)
//  2. now is within the window of the delivery tracking entry (ErrWindowExpired)
//  3. itemIDs is a non-empty subset of the order's line items, without
//     duplicates (ErrInvalidSelection)
//  4. description is non-empty (ErrInvalidSelection)
//  5. at most MaxAttachments attachments (ErrTooManyAttachments)
//
// Overlap with other unresolved requests for the same order is a storage-level
// concern checked by the caller before persisting. The order itself is not
// mutated; return processing is tracked independently.
func Open(
	o *order.Order,
	id kernel.UUID,
	itemIDs []kernel.UUID,
	kind Kind,
	reason Reason,
	description string,
	attachments []string,
	window time.Duration,
	now time.Time,
) (*ReturnRequest, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	if o.Status() != order.Delivered {
		return nil, fmt.Errorf("%w: order is %s", ErrNotEligible, o.Status())
	}

	deliveredAt, ok := o.DeliveredAt()
	if !ok {
		return nil, fmt.Errorf("%w: no delivery record", ErrNotEligible)
	}
	if now.Sub(deliveredAt) > window {
		return nil, fmt.Errorf("%w: delivered at %s", ErrWindowExpired, deliveredAt.Format(time.RFC3339))
	}

	if len(itemIDs) == 0 {
		return nil, fmt.Errorf("%w: no items selected", ErrInvalidSelection)
	}
	seen := make(map[kernel.UUID]struct{}, len(itemIDs))
	for _, itemID := range itemIDs {
		if err := itemID.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[itemID]; dup {
			return nil, fmt.Errorf("%w: item %s selected twice", ErrInvalidSelection, itemID)
		}
		seen[itemID] = struct{}{}
		if !o.HasItem(itemID) {
			return nil, fmt.Errorf("%w: item %s is not part of order %s", ErrInvalidSelection, itemID, o.ID())
		}
	}

	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidSelection)
	}

	if len(attachments) > MaxAttachments {
		return nil, fmt.Errorf("%w: %d attachments, max is %d", ErrTooManyAttachments, len(attachments), MaxAttachments)
	}

	if err := errors.Join(kind.Validate(), reason.Validate()); err != nil {
		return nil, err
	}

	return &ReturnRequest{
		id:            id,
		orderID:       o.ID(),
		itemIDs:       append([]kernel.UUID(nil), itemIDs...),
		kind:          kind,
		reason:        reason,
		description:   description,
		attachments:   append([]string(nil), attachments...),
		status:        Submitted,
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreReturnRequest reconstructs a ReturnRequest from persistence.
func RestoreReturnRequest(
	id kernel.UUID,
	orderID kernel.UUID,
	itemIDs []kernel.UUID,
	kind Kind,
	reason Reason,
	description string,
	attachments []string,
	status Status,
	createdAt time.Time,
) (*ReturnRequest, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		kind.Validate(),
		reason.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("itemIDs")
	}
	if description == "" {
		return nil, errs.NewValueIsRequiredError("description")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &ReturnRequest{
		id:            id,
		orderID:       orderID,
		itemIDs:       append([]kernel.UUID(nil), itemIDs...),
		kind:          kind,
		reason:        reason,
		description:   description,
		attachments:   append([]string(nil), attachments...),
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the request was created through Open or RestoreReturnRequest.
func (r *ReturnRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReturnRequestIsNotConstructed
	}
	return nil
}

// ID returns the request's unique identifier.
func (r *ReturnRequest) ID() kernel.UUID {
	return r.id
}

// OrderID returns the owning order's identifier.
func (r *ReturnRequest) OrderID() kernel.UUID {
	return r.orderID
}

// ItemIDs returns a copy of the selected line-item identities.
func (r *ReturnRequest) ItemIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), r.itemIDs...)
}

// Kind returns whether this is a return or an exchange.
func (r *ReturnRequest) Kind() Kind {
	return r.kind
}

// Reason returns the customer's stated reason.
func (r *ReturnRequest) Reason() Reason {
	return r.reason
}

// Description returns the customer's free-text description.
func (r *ReturnRequest) Description() string {
	return r.description
}

// Attachments returns a copy of the attached image references.
func (r *ReturnRequest) Attachments() []string {
	return append([]string(nil), r.attachments...)
}

// Status returns the current status of the request.
func (r *ReturnRequest) Status() Status {
	return r.status
}

// CreatedAt returns the submission timestamp.
func (r *ReturnRequest) CreatedAt() time.Time {
	return r.createdAt
}

// ContainsAnyItem reports whether any of the given line items is part of
// this request. Used to reject overlapping requests while this one is
// unresolved.
func (r *ReturnRequest) ContainsAnyItem(itemIDs []kernel.UUID) bool {
	for _, candidate := range itemIDs {
		for _, itemID := range r.itemIDs {
			if itemID.IsEqual(candidate) {
				return true
			}
		}
	}
	return false
}

// Resolve records the final state decided by the fulfillment gateway.
// The request must still be Submitted and the target must be a resolution
// status; the request is otherwise immutable.
func (r *ReturnRequest) Resolve(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !target.IsResolved() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a resolution status", target))
	}
	if r.status.IsResolved() {
		return fmt.Errorf("%w: %s", ErrAlreadyResolved, r.status)
	}

	r.status = target
	return nil
}
