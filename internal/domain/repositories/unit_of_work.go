package repositories

import "context"

// UnitOfWork runs a function inside a single transaction scope. Repository
// calls made with the context passed to fn join that transaction, so a key
// redemption can update the key, the ledger, and the user atomically.
type UnitOfWork interface {
	// Do commits when fn returns nil and rolls back otherwise.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
