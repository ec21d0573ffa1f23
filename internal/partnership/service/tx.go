package service

import (
	"context"
	"sync"
	"time"

	dErrors "buyeralike/pkg/domain-errors"
)

const defaultTxTimeout = 5 * time.Second

// snapshotter is implemented by in-memory stores that can roll back.
type snapshotter interface {
	Snapshot() (restore func())
}

type inMemoryTxKey struct{}

// inMemoryStoreTx serialises transactions behind one lock and restores store
// snapshots when fn fails, giving in-memory stores all-or-nothing writes.
type inMemoryStoreTx struct {
	mu      sync.Mutex
	stores  []snapshotter
	timeout time.Duration
}

func newInMemoryStoreTx(timeout time.Duration, stores ...any) *inMemoryStoreTx {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	tx := &inMemoryStoreTx{timeout: timeout}
	for _, store := range stores {
		if snap, ok := store.(snapshotter); ok {
			tx.stores = append(tx.stores, snap)
		}
	}
	return tx
}

func (t *inMemoryStoreTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if ctx.Value(inMemoryTxKey{}) != nil {
		return fn(ctx)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Check again after acquiring lock
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	restores := make([]func(), 0, len(t.stores))
	for _, store := range t.stores {
		restores = append(restores, store.Snapshot())
	}
	if err := fn(context.WithValue(ctx, inMemoryTxKey{}, true)); err != nil {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
		return err
	}
	return nil
}
