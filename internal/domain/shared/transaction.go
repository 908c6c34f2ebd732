package shared

import "context"

// TransactionManager runs a function inside a single storage transaction.
// Repositories participating in the transaction resolve their connection
// from the context passed to fn, so writes across aggregates either all
// commit or all roll back.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
