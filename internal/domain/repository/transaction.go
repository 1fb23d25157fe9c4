package repository

import "context"

// RepositoryFactory provides repository instances bound to a single transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
}

// TransactionManager defines the interface for executing operations within a database transaction.
// The callback receives a factory whose repositories all share the same transaction.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
