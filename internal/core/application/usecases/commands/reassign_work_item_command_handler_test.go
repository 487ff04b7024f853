package commands_test

import (
	"testing"

	"expedition/internal/core/application/usecases/commands"
	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"
	"expedition/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReassignWorkItemCommandHandler_Handle_PrimaryMovesLine(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	companyID := kernel.NewUUID()
	oldDriverID := kernel.NewUUID()
	newDriverID := kernel.NewUUID()
	deliveryOrderID := kernel.NewUUID()

	source := testExpedition(t, companyID, oldDriverID)
	line, err := source.AddLine(deliveryOrderID)
	require.NoError(t, err)
	require.NoError(t, line.AllocationFor(oldDriverID).SetQuantities(3, 45))

	cmd, err := commands.NewReassignWorkItemCommand(deliveryOrderID, oldDriverID, newDriverID, actorID)
	require.NoError(t, err)

	capabilities := new(MockCapabilities)
	capabilities.On("IsDispatcher", ctx, actorID).Return(false, nil).Once()

	deliveryOrder := ports.DeliveryOrder{ID: deliveryOrderID, Reference: "WH/OUT/0100"}
	vehicleID := kernel.NewUUID()

	expeditionRepo := new(MockExpeditionRepository)
	docs := new(MockDeliveryOrders)
	items := new(MockWorkItems)
	drivers := new(MockDrivers)
	uow := new(MockMirrorUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ExpeditionRepository").Return(expeditionRepo).Once(),
		expeditionRepo.On("GetByDeliveryOrder", ctx, deliveryOrderID).
			Return([]*expedition.Expedition{source}, nil).Once(),
		uow.On("ExpeditionRepository").Return(expeditionRepo).Once(),
		expeditionRepo.On("GetByKey", ctx, companyID, source.Date(), newDriverID).
			Return(nil, errs.NewObjectNotFoundError("expedition", newDriverID)).Once(),
		uow.On("DeliveryOrders").Return(docs).Once(),
		uow.On("SalesOrders").Return(new(MockSalesOrders)).Once(),
		uow.On("Invoices").Return(new(MockInvoices)).Once(),
		docs.On("Get", ctx, deliveryOrderID).Return(deliveryOrder, nil).Once(),
		docs.On("SetDriver", ctx, deliveryOrderID, newDriverID).Return(nil).Once(),
		uow.On("DeliveryOrders").Return(docs).Once(),
		uow.On("WorkItems").Return(items).Once(),
		docs.On("Get", ctx, deliveryOrderID).Return(deliveryOrder, nil).Once(),
		drivers.On("Get", ctx, newDriverID).
			Return(ports.Driver{ID: newDriverID, DefaultVehicleID: &vehicleID}, nil).Once(),
		items.On("Upsert", ctx, mock.AnythingOfType("ports.WorkItem")).Return(nil).Once(),
		items.On("GetByDelivery", ctx, deliveryOrderID, false).
			Return([]ports.WorkItem{{DeliveryOrderID: deliveryOrderID, DriverID: oldDriverID}}, nil).Once(),
		items.On("Deactivate", ctx, deliveryOrderID, oldDriverID).Return(nil).Once(),
		expeditionRepo.On("Update", ctx, source).Return(nil).Once(),
		expeditionRepo.On("Add", ctx, mock.AnythingOfType("*expedition.Expedition")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMirrorUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReassignWorkItemCommandHandler(
		factory, capabilities, commands.NewWorkItemSynchronizer(drivers, new(MockFleet)))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	// the stop left the source expedition, quantities travelled with it
	assert.True(t, source.IsEmpty())
	assert.True(t, line.HasParticipant(newDriverID))
	assert.False(t, line.HasParticipant(oldDriverID))
	assert.Equal(t, 3.0, line.AllocationFor(newDriverID).Boxes())
	expeditionRepo.AssertExpectations(t)
	items.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReassignWorkItemCommandHandler_Handle_HelperSwapsShare(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	mainDriverID := kernel.NewUUID()
	helperID := kernel.NewUUID()
	newHelperID := kernel.NewUUID()
	deliveryOrderID := kernel.NewUUID()

	exp := testExpedition(t, kernel.NewUUID(), mainDriverID)
	line, err := exp.AddLine(deliveryOrderID)
	require.NoError(t, err)
	require.NoError(t, line.AddParticipant(helperID))
	require.NoError(t, line.AllocationFor(helperID).SetQuantities(2, 10))

	cmd, err := commands.NewReassignWorkItemCommand(deliveryOrderID, helperID, newHelperID, actorID)
	require.NoError(t, err)

	capabilities := new(MockCapabilities)
	capabilities.On("IsDispatcher", ctx, actorID).Return(false, nil).Once()

	deliveryOrder := ports.DeliveryOrder{ID: deliveryOrderID, Reference: "WH/OUT/0101"}

	expeditionRepo := new(MockExpeditionRepository)
	docs := new(MockDeliveryOrders)
	items := new(MockWorkItems)
	uow := new(MockMirrorUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ExpeditionRepository").Return(expeditionRepo).Once(),
		expeditionRepo.On("GetByDeliveryOrder", ctx, deliveryOrderID).
			Return([]*expedition.Expedition{exp}, nil).Once(),
		uow.On("DeliveryOrders").Return(docs).Once(),
		uow.On("WorkItems").Return(items).Once(),
		docs.On("Get", ctx, deliveryOrderID).Return(deliveryOrder, nil).Once(),
		items.On("Upsert", ctx, mock.AnythingOfType("ports.WorkItem")).Return(nil).Twice(),
		items.On("GetByDelivery", ctx, deliveryOrderID, false).
			Return([]ports.WorkItem{{DeliveryOrderID: deliveryOrderID, DriverID: helperID}}, nil).Once(),
		items.On("Deactivate", ctx, deliveryOrderID, helperID).Return(nil).Once(),
		expeditionRepo.On("Update", ctx, exp).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMirrorUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReassignWorkItemCommandHandler(
		factory, capabilities, commands.NewWorkItemSynchronizer(new(MockDrivers), new(MockFleet)))
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	// main driver untouched, helper swapped, share preserved
	assert.True(t, exp.DriverID().IsEqual(mainDriverID))
	assert.True(t, line.HasParticipant(newHelperID))
	assert.False(t, line.HasParticipant(helperID))
	assert.Equal(t, 2.0, line.AllocationFor(newHelperID).Boxes())
	docs.AssertNotCalled(t, "SetDriver", mock.Anything, mock.Anything, mock.Anything)
	items.AssertExpectations(t)
}

func TestReassignWorkItemCommandHandler_Handle_UnknownDriver(t *testing.T) {
	ctx := t.Context()
	actorID := kernel.NewUUID()
	deliveryOrderID := kernel.NewUUID()

	cmd, err := commands.NewReassignWorkItemCommand(
		deliveryOrderID, kernel.NewUUID(), kernel.NewUUID(), actorID)
	require.NoError(t, err)

	capabilities := new(MockCapabilities)
	capabilities.On("IsDispatcher", ctx, actorID).Return(false, nil).Once()

	expeditionRepo := new(MockExpeditionRepository)
	uow := new(MockMirrorUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ExpeditionRepository").Return(expeditionRepo).Once(),
		expeditionRepo.On("GetByDeliveryOrder", ctx, deliveryOrderID).
			Return([]*expedition.Expedition{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockMirrorUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReassignWorkItemCommandHandler(
		factory, capabilities, commands.NewWorkItemSynchronizer(new(MockDrivers), new(MockFleet)))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDriverNotInvolved)
}

func TestReassignWorkItemCommandHandler_Handle_SameDriverIsNoOp(t *testing.T) {
	driverID := kernel.NewUUID()
	cmd, err := commands.NewReassignWorkItemCommand(
		kernel.NewUUID(), driverID, driverID, kernel.NewUUID())
	require.NoError(t, err)

	factory := new(MockMirrorUoWFactory)
	handler := commands.NewReassignWorkItemCommandHandler(
		factory, new(MockCapabilities), commands.NewWorkItemSynchronizer(new(MockDrivers), new(MockFleet)))

	require.NoError(t, handler.Handle(t.Context(), cmd))
	factory.AssertNotCalled(t, "Create")
}
