package postgres

import (
	"context"
	"sync"
)

type commitHooksKey struct{}

// commitHooks collects work that must only happen once a unit of work commits.
// Each WithTx level owns one list and hands it to its parent on success.
type commitHooks struct {
	mu  sync.Mutex
	fns []func(ctx context.Context)
}

func (h *commitHooks) add(fns ...func(ctx context.Context)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = append(h.fns, fns...)
}

func (h *commitHooks) take() []func(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fns := h.fns
	h.fns = nil
	return fns
}

// AfterCommit runs fn once the outermost unit of work on ctx commits and drops
// it if any enclosing level rolls back. Outside a unit of work fn runs now.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if hooks, ok := ctx.Value(commitHooksKey{}).(*commitHooks); ok {
		hooks.add(fn)
		return
	}
	fn(ctx)
}

// WithCommitHooks runs fn as one unit of work level for AfterCommit. Clients
// implementing IClient wrap their transaction in it.
func WithCommitHooks(ctx context.Context, fn func(ctx context.Context) error) error {
	parent, nested := ctx.Value(commitHooksKey{}).(*commitHooks)
	hooks := &commitHooks{}

	if err := fn(context.WithValue(ctx, commitHooksKey{}, hooks)); err != nil {
		return err
	}

	if nested {
		parent.add(hooks.take()...)
		return nil
	}
	for _, hook := range hooks.take() {
		hook(ctx)
	}
	return nil
}
