package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/settings"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(
	ctx context.Context, d *delivery.Delivery, expectedStatus delivery.Status,
) error {
	args := m.Called(ctx, d, expectedStatus)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetAllForAgent(ctx context.Context, agentID kernel.UUID) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetActiveForAgent(ctx context.Context, agentID kernel.UUID) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) CountNonTerminalForAgent(ctx context.Context, agentID kernel.UUID) (int, error) {
	args := m.Called(ctx, agentID)
	return args.Int(0), args.Error(1)
}

func (m *MockDeliveryRepository) GetStaleAssigned(ctx context.Context, cutoff time.Time) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) AddTrackingPoint(ctx context.Context, point *delivery.TrackingPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockDeliveryRepository) AddIssue(ctx context.Context, issue *delivery.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockDeliveryRepository) AddRating(ctx context.Context, rating *delivery.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockDeliveryRepository) GetRatingsForAgent(ctx context.Context, agentID kernel.UUID) ([]*delivery.Rating, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Rating), args.Error(1)
}

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) GetOrCreate(ctx context.Context) (settings.DeliverySettings, error) {
	args := m.Called(ctx)
	return args.Get(0).(settings.DeliverySettings), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) SettingsRepository() ports.SettingsRepository {
	args := m.Called()
	return args.Get(0).(ports.SettingsRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishDeliveryStatusChanged(
	ctx context.Context, event ports.DeliveryStatusChangedEvent,
) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func createDispatchableAgent(t *testing.T) *agent.Agent {
	t.Helper()
	a := createCoveredAgent(t)
	available, err := a.ToggleAvailability()
	require.NoError(t, err)
	require.True(t, available)
	return a
}

func TestAssignOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewAssignOrderCommand(orderID, nil, nil)
	require.NoError(t, err)

	assignee := createDispatchableAgent(t)

	agentRepo := new(MockAgentRepository)
	deliveryRepo := new(MockDeliveryRepository)
	settingsRepo := new(MockSettingsRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		settingsRepo.On("GetOrCreate", ctx).Return(settings.DefaultDeliverySettings(), nil).Once(),
		agentRepo.On("GetAllAvailable", ctx).Return([]*agent.Agent{assignee}, nil).Once(),
		deliveryRepo.On("CountNonTerminalForAgent", ctx, assignee.ID()).Return(0, nil).Once(),
		deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("PublishDeliveryStatusChanged", ctx,
		mock.AnythingOfType("ports.DeliveryStatusChangedEvent")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	agentRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	settingsRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)

	// Fixed pricing with an 80% payout share.
	added := deliveryRepo.Calls[1].Arguments[1].(*delivery.Delivery)
	assert.True(t, added.OrderID().IsEqual(orderID))
	assert.True(t, added.AgentID().IsEqual(assignee.ID()))
	assert.Equal(t, delivery.StatusAssigned, added.Status())
	assert.InDelta(t, 40.0, added.DeliveryFee(), 0.001)
	assert.InDelta(t, 32.0, added.AgentPayout(), 0.001)
}

func TestAssignOrderCommandHandler_Handle_RecordsInitialTrackingPoint(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAssignOrderCommand(kernel.NewUUID(), nil, nil)
	require.NoError(t, err)

	assignee := createDispatchableAgent(t)
	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	require.NoError(t, assignee.UpdateLocation(point, time.Now().UTC()))

	agentRepo := new(MockAgentRepository)
	deliveryRepo := new(MockDeliveryRepository)
	settingsRepo := new(MockSettingsRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		settingsRepo.On("GetOrCreate", ctx).Return(settings.DefaultDeliverySettings(), nil).Once(),
		agentRepo.On("GetAllAvailable", ctx).Return([]*agent.Agent{assignee}, nil).Once(),
		deliveryRepo.On("CountNonTerminalForAgent", ctx, assignee.ID()).Return(0, nil).Once(),
		deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		deliveryRepo.On("AddTrackingPoint", ctx, mock.AnythingOfType("*delivery.TrackingPoint")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("PublishDeliveryStatusChanged", ctx,
		mock.AnythingOfType("ports.DeliveryStatusChangedEvent")).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	deliveryRepo.AssertExpectations(t)

	recorded := deliveryRepo.Calls[2].Arguments[1].(*delivery.TrackingPoint)
	assert.InDelta(t, 12.9716, recorded.Point().Latitude(), 0.0001)
}

func TestAssignOrderCommandHandler_Handle_NoAgentsAvailable(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAssignOrderCommand(kernel.NewUUID(), nil, nil)
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	deliveryRepo := new(MockDeliveryRepository)
	settingsRepo := new(MockSettingsRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		settingsRepo.On("GetOrCreate", ctx).Return(settings.DefaultDeliverySettings(), nil).Once(),
		agentRepo.On("GetAllAvailable", ctx).Return([]*agent.Agent{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoAgentsAvailable)
	uow.AssertNotCalled(t, "Commit", ctx)
	publisher.AssertNotCalled(t, "PublishDeliveryStatusChanged", ctx, mock.Anything)
}

func TestAssignOrderCommandHandler_Handle_AgentAtCapacity(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAssignOrderCommand(kernel.NewUUID(), nil, nil)
	require.NoError(t, err)

	assignee := createDispatchableAgent(t)

	agentRepo := new(MockAgentRepository)
	deliveryRepo := new(MockDeliveryRepository)
	settingsRepo := new(MockSettingsRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		settingsRepo.On("GetOrCreate", ctx).Return(settings.DefaultDeliverySettings(), nil).Once(),
		agentRepo.On("GetAllAvailable", ctx).Return([]*agent.Agent{assignee}, nil).Once(),
		deliveryRepo.On("CountNonTerminalForAgent", ctx, assignee.ID()).
			Return(assignee.MaxConcurrentOrders(), nil).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrNoAgentsAvailable)
}

func TestAssignOrderCommandHandler_Handle_SettingsError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAssignOrderCommand(kernel.NewUUID(), nil, nil)
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	deliveryRepo := new(MockDeliveryRepository)
	settingsRepo := new(MockSettingsRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		settingsRepo.On("GetOrCreate", ctx).
			Return(settings.DeliverySettings{}, errors.New("database error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "database error")
}

func TestAssignOrderCommandHandler_Handle_PublishFailureDoesNotFail(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAssignOrderCommand(kernel.NewUUID(), nil, nil)
	require.NoError(t, err)

	assignee := createDispatchableAgent(t)

	agentRepo := new(MockAgentRepository)
	deliveryRepo := new(MockDeliveryRepository)
	settingsRepo := new(MockSettingsRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		settingsRepo.On("GetOrCreate", ctx).Return(settings.DefaultDeliverySettings(), nil).Once(),
		agentRepo.On("GetAllAvailable", ctx).Return([]*agent.Agent{assignee}, nil).Once(),
		deliveryRepo.On("CountNonTerminalForAgent", ctx, assignee.ID()).Return(0, nil).Once(),
		deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	publisher.On("PublishDeliveryStatusChanged", ctx,
		mock.AnythingOfType("ports.DeliveryStatusChangedEvent")).
		Return(errors.New("broker down")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignOrderCommandHandler(factory, publisher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
}
