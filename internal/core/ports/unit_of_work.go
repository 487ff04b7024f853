package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
//
// All repositories returned by a UnitOfWork are bound to the same database
// transaction, so an expedition change and its document mirrors commit or
// roll back together.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ExpeditionRepository returns an ExpeditionRepository instance bound to
	// the current transaction.
	ExpeditionRepository() ExpeditionRepository

	// DeliveryOrders returns the delivery order contract bound to the
	// current transaction.
	DeliveryOrders() DeliveryOrders

	// SalesOrders returns the sales order contract bound to the current
	// transaction.
	SalesOrders() SalesOrders

	// Invoices returns the invoicing contract bound to the current
	// transaction.
	Invoices() Invoices

	// WorkItems returns the work item contract bound to the current
	// transaction.
	WorkItems() WorkItems
}
