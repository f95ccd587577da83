package handler

import (
	"context"
	"errors"
	"time"

	"homefinder/internal/model"
	"homefinder/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListingFinder is the read side the handlers depend on
type ListingFinder interface {
	GetAllPublished(ctx context.Context) ([]model.Listing, error)
	GetPublished(ctx context.Context, keyword string) ([]model.Listing, error)
	GetBySlug(ctx context.Context, slug string) (*model.Listing, error)
}

// queryContext bounds a store fetch to the configured timeout
func queryContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

// fetchListings returns all published listings, or the keyword matches
// when a keyword is given
func fetchListings(ctx context.Context, finder ListingFinder, keyword string) ([]model.Listing, error) {
	if keyword == "" {
		return finder.GetAllPublished(ctx)
	}
	return finder.GetPublished(ctx, keyword)
}

func isQueryFailure(err error) bool {
	return errors.Is(err, repository.ErrQueryFailed) || errors.Is(err, context.DeadlineExceeded)
}
