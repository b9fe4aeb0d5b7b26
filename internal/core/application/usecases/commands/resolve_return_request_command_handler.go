package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/returnrequest"
)

// ResolveReturnRequestCommandHandler handles operator decisions on
// submitted return requests.
type ResolveReturnRequestCommandHandler struct {
	uowFactory ReturnUoWFactory
}

// NewResolveReturnRequestCommandHandler creates a handler for resolving return requests.
func NewResolveReturnRequestCommandHandler(uowFactory ReturnUoWFactory) ResolveReturnRequestCommandHandler {
	return ResolveReturnRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the resolution and returns the updated request.
func (h ResolveReturnRequestCommandHandler) Handle(
	ctx context.Context,
	cmd ResolveReturnRequestCommand,
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

	request, err := uow.ReturnRequestRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	if err = request.Resolve(cmd.Target()); err != nil {
		return nil, err
	}

	if err = uow.ReturnRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
