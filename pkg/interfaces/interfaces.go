package interfaces

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type UoW interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit() error
	Rollback() error
	Finalize(err *error)
	GetTx() pgx.Tx
}

type Event interface {
	GetType() string
}

// EventHandler processes one outbox event. A returned UoW is left open so
// the caller can mark the event in the same transaction.
type EventHandler[E Event] interface {
	Handle(ctx context.Context, event E) (UoW, error)
}
