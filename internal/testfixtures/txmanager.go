package testfixtures

import (
	"context"
	"sync"
)

// TxManager runs every transaction under one mutex, giving the in-memory
// stores serializable semantics. Nested calls reuse the outer transaction.
type TxManager struct {
	mu    sync.Mutex
	calls int
}

type txKey struct{}

// NewTxManager returns a serializing transaction manager.
func NewTxManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	return fn(context.WithValue(ctx, txKey{}, true))
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// Calls returns the number of top-level transactions started.
func (m *TxManager) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
