package testutil

import (
	"context"
	"sync/atomic"

	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient runs transactional work inline for tests backed by in-memory stores
type MockPostgresClient struct {
	logger *logger.Logger
	txs    atomic.Int64
}

func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx executes fn without a real transaction. Store rollback is not
// simulated, but AfterCommit work is dropped when fn fails.
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.txs.Add(1)
	return postgres.WithCommitHooks(ctx, fn)
}

// Querier is never used by code running against in-memory stores
func (c *MockPostgresClient) Querier(ctx context.Context) postgres.Querier {
	return nil
}

// TxCount returns how many units of work were started
func (c *MockPostgresClient) TxCount() int64 {
	return c.txs.Load()
}
