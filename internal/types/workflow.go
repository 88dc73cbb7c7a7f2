package types

import (
	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/samber/lo"
)

// Workflow maps each state to the states it may move to
type Workflow[S ~string] map[S][]S

// Allows reports whether from may move to to
func (w Workflow[S]) Allows(from, to S) bool {
	return lo.Contains(w[from], to)
}

// Check returns ErrInvalidTransition when the move is not allowed
func (w Workflow[S]) Check(entity EntityType, from, to S) error {
	if w.Allows(from, to) {
		return nil
	}
	return ierr.NewErrorf("invalid %s transition %s -> %s", entity, from, to).
		WithHintf("Cannot move %s from %s to %s", entity, from, to).
		WithReportableDetails(map[string]any{
			"entity_type": entity,
			"from":        from,
			"to":          to,
			"allowed":     w[from],
		}).
		Mark(ierr.ErrInvalidTransition)
}

// States lists every state that appears in the workflow
func (w Workflow[S]) States() []S {
	states := lo.Keys(w)
	for _, next := range w {
		states = append(states, next...)
	}
	return lo.Uniq(states)
}

// Validate checks that s is a known state of the workflow
func (w Workflow[S]) Validate(entity EntityType, s S) error {
	if lo.Contains(w.States(), s) {
		return nil
	}
	return ierr.NewErrorf("invalid %s status %s", entity, s).
		WithHintf("Invalid %s status", entity).
		Mark(ierr.ErrValidation)
}
