package repository

import "context"

// Transactor runs a unit of work atomically.
// Repositories called with the ctx handed to fn join the same transaction;
// nested calls reuse the outer one.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
