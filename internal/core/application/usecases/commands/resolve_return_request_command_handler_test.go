package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returnrequest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func submittedReturnRequest(t *testing.T) *returnrequest.ReturnRequest {
	t.Helper()
	request, err := returnrequest.RestoreReturnRequest(
		kernel.NewUUID(), kernel.NewUUID(),
		[]kernel.UUID{kernel.NewUUID()},
		returnrequest.KindReturn, returnrequest.ReasonDefective,
		"stopped working after a week", nil,
		returnrequest.Submitted,
		time.Now().UTC().Add(-24*time.Hour),
	)
	require.NoError(t, err)
	return request
}

func TestResolveReturnRequestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	request := submittedReturnRequest(t)
	cmd, err := commands.NewResolveReturnRequestCommand(request.ID(), returnrequest.Refunded)
	require.NoError(t, err)

	repo := new(MockReturnRequestRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnRequestRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, request.ID()).Return(request, nil).Once(),
		uow.On("ReturnRequestRepository").Return(repo).Once(),
		repo.On("Update", mock.Anything, request).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveReturnRequestCommandHandler(factory)
	resolved, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, returnrequest.Refunded, resolved.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestResolveReturnRequestCommandHandler_Handle_AlreadyResolved(t *testing.T) {
	ctx := t.Context()
	request := submittedReturnRequest(t)
	require.NoError(t, request.Resolve(returnrequest.Rejected))

	cmd, err := commands.NewResolveReturnRequestCommand(request.ID(), returnrequest.Approved)
	require.NoError(t, err)

	repo := new(MockReturnRequestRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("ReturnRequestRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("Get", mock.Anything, request.ID()).Return(request, nil)

	factory := new(MockReturnUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewResolveReturnRequestCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, returnrequest.ErrAlreadyResolved)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewResolveReturnRequestCommand_RejectsInvalidTarget(t *testing.T) {
	_, err := commands.NewResolveReturnRequestCommand(kernel.NewUUID(), returnrequest.Status(42))
	require.Error(t, err)
}
