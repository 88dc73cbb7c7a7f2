package router

import (
	"context"
	"errors"
	"testing"

	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestShouldRetry(t *testing.T) {
	log := logger.NewNoop()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unknown", errors.New("smtp unavailable"), true},
		{"deadline", context.DeadlineExceeded, true},
		{"validation", ierr.NewError("bad payload").Mark(ierr.ErrValidation), false},
		{"not found", ierr.NewError("gone").Mark(ierr.ErrNotFound), false},
		{"no organization", ierr.NewError("no org").Mark(ierr.ErrNoOrganizationContext), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldRetry(log, tt.err))
		})
	}
}
