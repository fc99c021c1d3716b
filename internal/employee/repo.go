package employee

import (
	"context"
	"errors"
)

// ErrEmailTaken is returned by Create, and by UpdateByID when the
// update would change the email to one another record already holds.
var ErrEmailTaken = errors.New("email already registered")

// Repository is the storage contract. Postgres and in-memory
// implementations satisfy it identically; absent records come back as
// nil without an error so callers can tell "missing" from "broken".
type Repository interface {
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	UpdateByID(ctx context.Context, id string, upd Update) (*Employee, error)
	DeleteByID(ctx context.Context, id string) error
	InsertMany(ctx context.Context, items []Employee) error
}
