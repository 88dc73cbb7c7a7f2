package router

import (
	"context"
	"net"

	"github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/logger"
)

// shouldRetry reports whether redelivering the message can succeed
func shouldRetry(logger *logger.Logger, err error) bool {
	// Network errors
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		logger.Debugw("retrying due to network timeout", "error", netErr)
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Business logic errors (don't retry)
	if errors.IsValidation(err) ||
		errors.IsNotFound(err) ||
		errors.IsPermissionDenied(err) ||
		errors.IsNoOrganizationContext(err) {
		logger.Debugw("non-retryable job error", "error", err)
		return false
	}

	// By default, retry unknown errors
	return true
}
