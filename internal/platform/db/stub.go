package db

import "context"

// StubTxManager runs the unit of work without a real transaction.
type StubTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ TxManager = (*StubTxManager)(nil)

func (tm *StubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if tm.RunInTxFunc == nil {
		return fn(ctx)
	}
	return tm.RunInTxFunc(ctx, fn)
}
