package v1

import (
	"context"
	"net/http"

	ierr "github.com/buildline/buildline/internal/errors"
	"github.com/buildline/buildline/internal/types"
	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into req, reporting a validation error on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return false
	}
	return true
}

// bindFilter reads pagination and the project and status filters from the query string
func bindFilter(c *gin.Context) (*types.QueryFilter, bool) {
	filter := types.NewDefaultQueryFilter()
	if err := c.ShouldBindQuery(filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return nil, false
	}
	return filter, true
}

// runAction serves the body-less workflow endpoints, POST /<entity>/:id/<action>
func runAction[T any](c *gin.Context, action func(ctx context.Context, id string) (T, error)) {
	resp, err := action(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
