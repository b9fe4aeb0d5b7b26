package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/returnrequest"
	"fulfillment/internal/core/ports"
)

// OpenReturnRequestCommandHandler handles the return/exchange workflow.
// Loads the order, runs the workflow preconditions, rejects selections that
// overlap an unresolved request, and persists the new request together with
// its notification in one transaction.
type OpenReturnRequestCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewOpenReturnRequestCommandHandler creates a handler for opening return requests.
func NewOpenReturnRequestCommandHandler(uowFactory ReturnUoWFactory) OpenReturnRequestCommandHandler {
	return OpenReturnRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command and returns the submitted request.
func (h OpenReturnRequestCommandHandler) Handle(
	ctx context.Context,
	cmd OpenReturnRequestCommand,
) (*returnrequest.ReturnRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// The row lock serializes concurrent opens for the same order, so the
	// overlap check below sees every previously committed request.
	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	request, err := returnrequest.Open(
		aggregate,
		cmd.RequestID(),
		cmd.ItemIDs(),
		cmd.Kind(),
		cmd.Reason(),
		cmd.Description(),
		cmd.Attachments(),
		returnrequest.ReturnWindow,
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	unresolved, err := uow.ReturnRequestRepository().GetUnresolvedByOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	for _, existing := range unresolved {
		if existing.ContainsAnyItem(request.ItemIDs()) {
			return nil, fmt.Errorf("%w: request %s is still unresolved",
				returnrequest.ErrItemsAlreadyRequested, existing.ID())
		}
	}

	if err = uow.ReturnRequestRepository().Add(ctx, request); err != nil {
		return nil, err
	}

	err = uow.NotificationOutbox().Add(ctx, ports.Notification{
		OrderID:    aggregate.ID(),
		Event:      request.Kind().String(),
		OccurredAt: request.CreatedAt(),
	})
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
