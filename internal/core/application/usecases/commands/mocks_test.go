package commands_test

import (
	"context"

	"expedition/internal/core/application/usecases/commands"
	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockExpeditionRepository struct{ mock.Mock }

func (m *MockExpeditionRepository) Add(ctx context.Context, e *expedition.Expedition) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpeditionRepository) Update(ctx context.Context, e *expedition.Expedition) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockExpeditionRepository) Get(ctx context.Context, id kernel.UUID) (*expedition.Expedition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expedition.Expedition), args.Error(1)
}

func (m *MockExpeditionRepository) GetByKey(
	ctx context.Context, companyID kernel.UUID, date kernel.Date, driverID kernel.UUID,
) (*expedition.Expedition, error) {
	args := m.Called(ctx, companyID, date, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*expedition.Expedition), args.Error(1)
}

func (m *MockExpeditionRepository) GetByDeliveryOrder(
	ctx context.Context, deliveryOrderID kernel.UUID,
) ([]*expedition.Expedition, error) {
	args := m.Called(ctx, deliveryOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*expedition.Expedition), args.Error(1)
}

func (m *MockExpeditionRepository) GetAllByDate(
	ctx context.Context, companyID kernel.UUID, date kernel.Date,
) ([]*expedition.Expedition, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*expedition.Expedition), args.Error(1)
}

type MockDeliveryOrders struct{ mock.Mock }

func (m *MockDeliveryOrders) Get(ctx context.Context, id kernel.UUID) (ports.DeliveryOrder, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.DeliveryOrder), args.Error(1)
}

func (m *MockDeliveryOrders) SetDriver(ctx context.Context, id kernel.UUID, driverID kernel.UUID) error {
	args := m.Called(ctx, id, driverID)
	return args.Error(0)
}

func (m *MockDeliveryOrders) SetVehicle(ctx context.Context, id kernel.UUID, vehicleID *kernel.UUID) error {
	args := m.Called(ctx, id, vehicleID)
	return args.Error(0)
}

type MockSalesOrders struct{ mock.Mock }

func (m *MockSalesOrders) Get(ctx context.Context, id kernel.UUID) (ports.SalesOrder, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.SalesOrder), args.Error(1)
}

func (m *MockSalesOrders) SetDriver(ctx context.Context, id kernel.UUID, driverID kernel.UUID) error {
	args := m.Called(ctx, id, driverID)
	return args.Error(0)
}

type MockInvoices struct{ mock.Mock }

func (m *MockInvoices) SetDriverOnDrafts(ctx context.Context, salesOrderID kernel.UUID, driverID kernel.UUID) error {
	args := m.Called(ctx, salesOrderID, driverID)
	return args.Error(0)
}

type MockWorkItems struct{ mock.Mock }

func (m *MockWorkItems) GetByDelivery(
	ctx context.Context, deliveryOrderID kernel.UUID, includeInactive bool,
) ([]ports.WorkItem, error) {
	args := m.Called(ctx, deliveryOrderID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.WorkItem), args.Error(1)
}

func (m *MockWorkItems) Upsert(ctx context.Context, item ports.WorkItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockWorkItems) Deactivate(ctx context.Context, deliveryOrderID kernel.UUID, driverID kernel.UUID) error {
	args := m.Called(ctx, deliveryOrderID, driverID)
	return args.Error(0)
}

type MockDrivers struct{ mock.Mock }

func (m *MockDrivers) Get(ctx context.Context, id kernel.UUID) (ports.Driver, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Driver), args.Error(1)
}

type MockFleet struct{ mock.Mock }

func (m *MockFleet) VehicleOfDriver(ctx context.Context, driverID kernel.UUID) (*kernel.UUID, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.UUID), args.Error(1)
}

type MockCapabilities struct{ mock.Mock }

func (m *MockCapabilities) IsDispatcher(ctx context.Context, actorID kernel.UUID) (bool, error) {
	args := m.Called(ctx, actorID)
	return args.Bool(0), args.Error(1)
}

type MockExpeditionUoW struct{ mock.Mock }

func (m *MockExpeditionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockExpeditionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockExpeditionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockExpeditionUoW) ExpeditionRepository() ports.ExpeditionRepository {
	args := m.Called()
	return args.Get(0).(ports.ExpeditionRepository)
}

type MockExpeditionUoWFactory struct{ mock.Mock }

func (m *MockExpeditionUoWFactory) Create() commands.ExpeditionUoW {
	args := m.Called()
	return args.Get(0).(commands.ExpeditionUoW)
}

type MockRoutingUoW struct{ mock.Mock }

func (m *MockRoutingUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRoutingUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRoutingUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRoutingUoW) ExpeditionRepository() ports.ExpeditionRepository {
	args := m.Called()
	return args.Get(0).(ports.ExpeditionRepository)
}

func (m *MockRoutingUoW) DeliveryOrders() ports.DeliveryOrders {
	args := m.Called()
	return args.Get(0).(ports.DeliveryOrders)
}

func (m *MockRoutingUoW) SalesOrders() ports.SalesOrders {
	args := m.Called()
	return args.Get(0).(ports.SalesOrders)
}

func (m *MockRoutingUoW) WorkItems() ports.WorkItems {
	args := m.Called()
	return args.Get(0).(ports.WorkItems)
}

type MockRoutingUoWFactory struct{ mock.Mock }

func (m *MockRoutingUoWFactory) Create() commands.RoutingUoW {
	args := m.Called()
	return args.Get(0).(commands.RoutingUoW)
}

type MockMirrorUoW struct{ mock.Mock }

func (m *MockMirrorUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMirrorUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMirrorUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMirrorUoW) ExpeditionRepository() ports.ExpeditionRepository {
	args := m.Called()
	return args.Get(0).(ports.ExpeditionRepository)
}

func (m *MockMirrorUoW) DeliveryOrders() ports.DeliveryOrders {
	args := m.Called()
	return args.Get(0).(ports.DeliveryOrders)
}

func (m *MockMirrorUoW) SalesOrders() ports.SalesOrders {
	args := m.Called()
	return args.Get(0).(ports.SalesOrders)
}

func (m *MockMirrorUoW) Invoices() ports.Invoices {
	args := m.Called()
	return args.Get(0).(ports.Invoices)
}

func (m *MockMirrorUoW) WorkItems() ports.WorkItems {
	args := m.Called()
	return args.Get(0).(ports.WorkItems)
}

type MockMirrorUoWFactory struct{ mock.Mock }

func (m *MockMirrorUoWFactory) Create() commands.MirrorUoW {
	args := m.Called()
	return args.Get(0).(commands.MirrorUoW)
}
