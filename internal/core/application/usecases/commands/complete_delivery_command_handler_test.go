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

func createPickedUpOrder(t *testing.T) *delivery.Delivery {
	t.Helper()
	now := time.Now().UTC()
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 40.00, 32.00, now)
	require.NoError(t, err)
	require.NoError(t, d.Accept(now))
	require.NoError(t, d.ArriveAtStore(now))
	require.NoError(t, d.Pickup(d.StorePickupOTP(), now))
	return d
}

func TestCompleteDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	deliveryEntity := createPickedUpOrder(t)
	cmd, err := commands.NewCompleteDeliveryCommand(
		deliveryEntity.ID(), deliveryEntity.CustomerDeliveryOTP())
	require.NoError(t, err)

	assignee := createCoveredAgent(t)

	agentRepo := new(MockAgentRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, deliveryEntity.ID()).Return(deliveryEntity, nil).Once(),
		deliveryRepo.On("Update", ctx, deliveryEntity, delivery.StatusPickedUp).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		agentRepo.On("GetForUpdate", ctx, deliveryEntity.AgentID()).Return(assignee, nil).Once(),
		deliveryRepo.On("GetAllForAgent", ctx, deliveryEntity.AgentID()).
			Return([]*delivery.Delivery{deliveryEntity}, nil).
			Once(),
		deliveryRepo.On("GetRatingsForAgent", ctx, deliveryEntity.AgentID()).
			Return([]*delivery.Rating{}, nil).
			Once(),
		agentRepo.On("Update", ctx, assignee).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("PublishDeliveryStatusChanged", ctx,
		mock.AnythingOfType("ports.DeliveryStatusChangedEvent")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.StatusDelivered, deliveryEntity.Status())
	assert.True(t, deliveryEntity.CustomerDeliveryVerified())
	assert.Equal(t, 1, assignee.Stats().TotalDeliveries)
	assert.Equal(t, 1, assignee.Stats().SuccessfulDeliveries)
	assert.InDelta(t, 32.00, assignee.Stats().TotalEarnings, 0.001)
	agentRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCompleteDeliveryCommandHandler_Handle_OTPMismatch(t *testing.T) {
	ctx := t.Context()
	deliveryEntity := createPickedUpOrder(t)
	wrongOTP := "000000"
	if deliveryEntity.CustomerDeliveryOTP() == wrongOTP {
		wrongOTP = "111111"
	}
	cmd, err := commands.NewCompleteDeliveryCommand(deliveryEntity.ID(), wrongOTP)
	require.NoError(t, err)

	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, deliveryEntity.ID()).Return(deliveryEntity, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, delivery.ErrOTPMismatch)
	assert.Equal(t, delivery.StatusPickedUp, deliveryEntity.Status())
	deliveryRepo.AssertNotCalled(t, "Update", ctx, deliveryEntity, delivery.StatusPickedUp)
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "PublishDeliveryStatusChanged", ctx, mock.Anything)
}

func TestCompleteDeliveryCommandHandler_Handle_StateConflict(t *testing.T) {
	ctx := t.Context()
	deliveryEntity := createPickedUpOrder(t)
	cmd, err := commands.NewCompleteDeliveryCommand(
		deliveryEntity.ID(), deliveryEntity.CustomerDeliveryOTP())
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("Get", ctx, deliveryEntity.ID()).Return(deliveryEntity, nil).Once(),
		deliveryRepo.On("Update", ctx, deliveryEntity, delivery.StatusPickedUp).
			Return(ports.ErrDeliveryStateConflict).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteDeliveryCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrDeliveryStateConflict)
	agentRepo.AssertNotCalled(t, "GetForUpdate", ctx, deliveryEntity.AgentID())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCompleteDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CompleteDeliveryCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	publisher := new(MockEventPublisher)
	handler := commands.NewCompleteDeliveryCommandHandler(factory, publisher)
	err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCompleteDeliveryCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
