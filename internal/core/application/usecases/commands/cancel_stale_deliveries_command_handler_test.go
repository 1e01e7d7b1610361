package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createAssignedOrder(t *testing.T) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 40.00, 32.00,
		time.Now().UTC().Add(-30*time.Minute))
	require.NoError(t, err)
	return d
}

func TestCancelStaleDeliveriesCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelStaleDeliveriesCommand(15 * time.Minute)
	require.NoError(t, err)

	staleDelivery := createAssignedOrder(t)
	assignee := createCoveredAgent(t)

	listRepo := new(MockDeliveryRepository)
	listUow := new(MockUoW)
	mock.InOrder(
		listUow.On("Begin", ctx).Return(nil).Once(),
		listUow.On("DeliveryRepository").Return(listRepo).Once(),
		listRepo.On("GetStaleAssigned", ctx, mock.AnythingOfType("time.Time")).
			Return([]*delivery.Delivery{staleDelivery}, nil).
			Once(),
		listUow.On("Rollback", ctx).Return(nil).Once(),
	)

	agentRepo := new(MockAgentRepository)
	cancelRepo := new(MockDeliveryRepository)
	cancelUow := new(MockUoW)
	mock.InOrder(
		cancelUow.On("Begin", ctx).Return(nil).Once(),
		cancelUow.On("DeliveryRepository").Return(cancelRepo).Once(),
		cancelRepo.On("Get", ctx, staleDelivery.ID()).Return(staleDelivery, nil).Once(),
		cancelRepo.On("Update", ctx, staleDelivery, delivery.StatusAssigned).Return(nil).Once(),
		cancelRepo.On("AddIssue", ctx, mock.AnythingOfType("*delivery.Issue")).Return(nil).Once(),
		cancelUow.On("AgentRepository").Return(agentRepo).Once(),
		cancelUow.On("DeliveryRepository").Return(cancelRepo).Once(),
		agentRepo.On("GetForUpdate", ctx, staleDelivery.AgentID()).Return(assignee, nil).Once(),
		cancelRepo.On("GetAllForAgent", ctx, staleDelivery.AgentID()).
			Return([]*delivery.Delivery{staleDelivery}, nil).
			Once(),
		cancelRepo.On("GetRatingsForAgent", ctx, staleDelivery.AgentID()).
			Return([]*delivery.Rating{}, nil).
			Once(),
		agentRepo.On("Update", ctx, assignee).Return(nil).Once(),
		cancelUow.On("Commit", ctx).Return(nil).Once(),
		cancelUow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher := new(MockEventPublisher)
	publisher.On("PublishDeliveryStatusChanged", ctx,
		mock.AnythingOfType("ports.DeliveryStatusChangedEvent")).Return(nil).Once()

	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(listUow).Once(),
		factory.On("Create").Return(cancelUow).Once(),
	)

	handler := commands.NewCancelStaleDeliveriesCommandHandler(factory, publisher)
	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, cancelled)
	assert.Equal(t, delivery.StatusCancelled, staleDelivery.Status())
	assert.Equal(t, 1, assignee.Stats().FailedDeliveries)
	listRepo.AssertExpectations(t)
	cancelRepo.AssertExpectations(t)
	agentRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)

	filed := cancelRepo.Calls[2].Arguments[1].(*delivery.Issue)
	assert.Equal(t, delivery.IssueOther, filed.IssueType())
	assert.True(t, filed.DeliveryID().IsEqual(staleDelivery.ID()))
}

func TestCancelStaleDeliveriesCommandHandler_Handle_NothingStale(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelStaleDeliveriesCommand(15 * time.Minute)
	require.NoError(t, err)

	listRepo := new(MockDeliveryRepository)
	listUow := new(MockUoW)
	mock.InOrder(
		listUow.On("Begin", ctx).Return(nil).Once(),
		listUow.On("DeliveryRepository").Return(listRepo).Once(),
		listRepo.On("GetStaleAssigned", ctx, mock.AnythingOfType("time.Time")).
			Return([]*delivery.Delivery{}, nil).
			Once(),
		listUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listUow).Once()

	publisher := new(MockEventPublisher)
	handler := commands.NewCancelStaleDeliveriesCommandHandler(factory, publisher)
	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, cancelled)
	factory.AssertNumberOfCalls(t, "Create", 1)
}

func TestCancelStaleDeliveriesCommandHandler_Handle_SkipsOnConflict(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelStaleDeliveriesCommand(15 * time.Minute)
	require.NoError(t, err)

	staleDelivery := createAssignedOrder(t)

	listRepo := new(MockDeliveryRepository)
	listUow := new(MockUoW)
	mock.InOrder(
		listUow.On("Begin", ctx).Return(nil).Once(),
		listUow.On("DeliveryRepository").Return(listRepo).Once(),
		listRepo.On("GetStaleAssigned", ctx, mock.AnythingOfType("time.Time")).
			Return([]*delivery.Delivery{staleDelivery}, nil).
			Once(),
		listUow.On("Rollback", ctx).Return(nil).Once(),
	)

	cancelRepo := new(MockDeliveryRepository)
	cancelUow := new(MockUoW)
	mock.InOrder(
		cancelUow.On("Begin", ctx).Return(nil).Once(),
		cancelUow.On("DeliveryRepository").Return(cancelRepo).Once(),
		cancelRepo.On("Get", ctx, staleDelivery.ID()).Return(staleDelivery, nil).Once(),
		cancelRepo.On("Update", ctx, staleDelivery, delivery.StatusAssigned).
			Return(ports.ErrDeliveryStateConflict).
			Once(),
		cancelUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(listUow).Once(),
		factory.On("Create").Return(cancelUow).Once(),
	)

	publisher := new(MockEventPublisher)
	handler := commands.NewCancelStaleDeliveriesCommandHandler(factory, publisher)
	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, cancelled)
	cancelRepo.AssertNotCalled(t, "AddIssue", ctx, mock.Anything)
	cancelUow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "PublishDeliveryStatusChanged", ctx, mock.Anything)
}

func TestCancelStaleDeliveriesCommandHandler_Handle_SkipsAlreadyAccepted(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelStaleDeliveriesCommand(15 * time.Minute)
	require.NoError(t, err)

	staleDelivery := createAssignedOrder(t)
	acceptedDelivery := createAssignedOrder(t)
	require.NoError(t, acceptedDelivery.Accept(time.Now().UTC()))

	listRepo := new(MockDeliveryRepository)
	listUow := new(MockUoW)
	mock.InOrder(
		listUow.On("Begin", ctx).Return(nil).Once(),
		listUow.On("DeliveryRepository").Return(listRepo).Once(),
		listRepo.On("GetStaleAssigned", ctx, mock.AnythingOfType("time.Time")).
			Return([]*delivery.Delivery{staleDelivery}, nil).
			Once(),
		listUow.On("Rollback", ctx).Return(nil).Once(),
	)

	// The delivery was accepted between listing and cancelling.
	cancelRepo := new(MockDeliveryRepository)
	cancelUow := new(MockUoW)
	mock.InOrder(
		cancelUow.On("Begin", ctx).Return(nil).Once(),
		cancelUow.On("DeliveryRepository").Return(cancelRepo).Once(),
		cancelRepo.On("Get", ctx, staleDelivery.ID()).Return(acceptedDelivery, nil).Once(),
		cancelUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(listUow).Once(),
		factory.On("Create").Return(cancelUow).Once(),
	)

	publisher := new(MockEventPublisher)
	handler := commands.NewCancelStaleDeliveriesCommandHandler(factory, publisher)
	cancelled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, cancelled)
	cancelRepo.AssertNotCalled(t, "Update", ctx, mock.Anything, delivery.StatusAssigned)
}

func TestCancelStaleDeliveriesCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelStaleDeliveriesCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	publisher := new(MockEventPublisher)
	handler := commands.NewCancelStaleDeliveriesCommandHandler(factory, publisher)
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCancelStaleDeliveriesCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
