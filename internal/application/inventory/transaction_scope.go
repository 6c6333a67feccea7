package inventory

import (
	"context"

	"github.com/muhammedarifp/catering-app-temp-sub000/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// Every repository call made inside fn shares one database transaction, which is
// committed when fn returns nil and rolled back otherwise.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the inventory repositories bound to the current transaction.
// ItemRepo persists the InventoryItem aggregate; TransactionRepo is the append-only ledger.
type TransactionalRepositories interface {
	ItemRepo() inventory.InventoryItemRepository
	TransactionRepo() inventory.InventoryTransactionRepository
}

// NoOpTransactionScope runs fn against plain repositories without a database transaction.
// It is used by unit tests and by deployments without a transactional store.
type NoOpTransactionScope struct {
	itemRepo        inventory.InventoryItemRepository
	transactionRepo inventory.InventoryTransactionRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	itemRepo inventory.InventoryItemRepository,
	transactionRepo inventory.InventoryTransactionRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo:        itemRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the inventory item repository.
func (s *NoOpTransactionScope) ItemRepo() inventory.InventoryItemRepository {
	return s.itemRepo
}

// TransactionRepo returns the inventory transaction repository.
func (s *NoOpTransactionScope) TransactionRepo() inventory.InventoryTransactionRepository {
	return s.transactionRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
