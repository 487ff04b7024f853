// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"expedition/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ExpeditionRepoFactory provides access to the expedition repository within a transaction.
	ExpeditionRepoFactory interface {
		ExpeditionRepository() ports.ExpeditionRepository
	}

	// DeliveryOrdersFactory provides access to delivery order documents within a transaction.
	DeliveryOrdersFactory interface {
		DeliveryOrders() ports.DeliveryOrders
	}

	// SalesOrdersFactory provides access to sales orders within a transaction.
	SalesOrdersFactory interface {
		SalesOrders() ports.SalesOrders
	}

	// InvoicesFactory provides access to invoicing within a transaction.
	InvoicesFactory interface {
		Invoices() ports.Invoices
	}

	// WorkItemsFactory provides access to mirrored work items within a transaction.
	WorkItemsFactory interface {
		WorkItems() ports.WorkItems
	}

	// ExpeditionUoW manages transactions for expedition-only operations.
	// Used by lifecycle commands that never touch external documents.
	ExpeditionUoW interface {
		TxManager
		ExpeditionRepoFactory
	}

	// ExpeditionUoWFactory creates new expedition unit of work instances.
	ExpeditionUoWFactory interface {
		Create() ExpeditionUoW
	}

	// RoutingUoW manages transactions for routing and work item sync.
	// Used by commands that edit lines and mirror them into work items.
	// Sales orders are read here to gate routing on the applied mode.
	RoutingUoW interface {
		TxManager
		ExpeditionRepoFactory
		DeliveryOrdersFactory
		SalesOrdersFactory
		WorkItemsFactory
	}

	// RoutingUoWFactory creates new routing unit of work instances.
	RoutingUoWFactory interface {
		Create() RoutingUoW
	}

	// MirrorUoW manages transactions that reach every external document:
	// delivery orders, sales orders, draft invoices and work items.
	// Used by driver handovers, where all mirrors must move together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   expeditions := uow.ExpeditionRepository()
	//   docs := uow.DeliveryOrders()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	MirrorUoW interface {
		TxManager
		ExpeditionRepoFactory
		DeliveryOrdersFactory
		SalesOrdersFactory
		InvoicesFactory
		WorkItemsFactory
	}

	// MirrorUoWFactory creates new mirror unit of work instances.
	MirrorUoWFactory interface {
		Create() MirrorUoW
	}
)
