// Package tx carries the active *sql.Tx through a context so stores join the
// caller's transaction instead of using the pool.
package tx

import (
	"context"
	"database/sql"
)

type activeTxKey struct{}

// WithTx returns ctx carrying tx. A nil tx leaves ctx unchanged.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, activeTxKey{}, tx)
}

// From returns the transaction carried by ctx, if any.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(activeTxKey{}).(*sql.Tx)
	return tx, ok && tx != nil
}
