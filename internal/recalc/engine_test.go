package recalc

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/buildline/buildline/internal/config"
	"github.com/buildline/buildline/internal/logger"
	"github.com/buildline/buildline/internal/postgres"
	"github.com/buildline/buildline/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct {
	mu    sync.Mutex
	calls int
}

func (p *passthroughTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return fn(ctx)
}

func (p *passthroughTx) Querier(context.Context) postgres.Querier { return nil }

func newEngine(db postgres.IClient) *Engine {
	cfg := config.GetDefaultConfig()
	cfg.Recalc.InitialInterval = time.Millisecond
	cfg.Recalc.MaxRetries = 2
	return NewEngine(db, cfg, logger.NewNoop(), nil)
}

// parent total = sum of children, recomputed from scratch each time
type ledger struct {
	children map[string]decimal.Decimal
	total    decimal.Decimal
}

func (l *ledger) Recalculate(context.Context, string) error {
	sum := decimal.Zero
	for _, v := range l.children {
		sum = sum.Add(v)
	}
	l.total = sum
	return nil
}

func TestCascade_RecalculatesAfterWrite(t *testing.T) {
	db := &passthroughTx{}
	e := newEngine(db)
	l := &ledger{children: map[string]decimal.Decimal{}}

	target := func() []Target {
		return []Target{{EntityType: types.EntityTypeEstimate, ParentID: "est_1", Recalculator: l}}
	}

	require.NoError(t, e.Cascade(context.Background(), func(context.Context) error {
		l.children["li_1"] = decimal.RequireFromString("200.00")
		return nil
	}, target))
	assert.Equal(t, "200", l.total.String())

	require.NoError(t, e.Cascade(context.Background(), func(context.Context) error {
		delete(l.children, "li_1")
		return nil
	}, target))
	assert.True(t, l.total.IsZero())
}

func TestRecalculate_IsIdempotent(t *testing.T) {
	e := newEngine(&passthroughTx{})
	l := &ledger{children: map[string]decimal.Decimal{
		"a": decimal.RequireFromString("12.50"),
		"b": decimal.RequireFromString("7.25"),
	}}
	target := Target{EntityType: types.EntityTypeEstimate, ParentID: "est_1", Recalculator: l}

	e.Recalculate(context.Background(), target)
	first := l.total
	e.Recalculate(context.Background(), target)
	assert.True(t, first.Equal(l.total))
	assert.Equal(t, "19.75", l.total.StringFixed(2))
}

func TestCascade_RecalculationFailureDoesNotFailWrite(t *testing.T) {
	e := newEngine(&passthroughTx{})
	attempts := 0
	failing := RecalculatorFunc(func(context.Context, string) error {
		attempts++
		return errors.New("deadlock detected")
	})
	written := false

	err := e.Cascade(context.Background(), func(context.Context) error {
		written = true
		return nil
	}, func() []Target {
		return []Target{{EntityType: types.EntityTypeEstimate, ParentID: "est_1", Recalculator: failing}}
	})

	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, 3, attempts)
}

func TestCascade_WriteFailureSkipsRecalculation(t *testing.T) {
	e := newEngine(&passthroughTx{})
	called := false
	boom := errors.New("insert failed")

	err := e.Cascade(context.Background(), func(context.Context) error { return boom }, func() []Target {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestRecalculate_RetriesUntilSuccess(t *testing.T) {
	e := newEngine(&passthroughTx{})
	attempts := 0
	flaky := RecalculatorFunc(func(context.Context, string) error {
		attempts++
		if attempts < 2 {
			return errors.New("serialization failure")
		}
		return nil
	})

	e.Recalculate(context.Background(), Target{EntityType: types.EntityTypeEstimate, ParentID: "est_1", Recalculator: flaky})
	assert.Equal(t, 2, attempts)
}
