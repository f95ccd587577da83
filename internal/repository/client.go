package repository

import (
	"context"
	"errors"
	"fmt"

	"homefinder/internal/model"
)

// ErrQueryFailed is returned when the store is unreachable or rejects a query
var ErrQueryFailed = errors.New("content query failed")

// Client issues parameterized queries against the content store.
// Parameter values are always bound by the store, never spliced into query.
type Client interface {
	Fetch(ctx context.Context, query string, params map[string]string) ([]model.Document, error)
}

func queryFailed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrQueryFailed, fmt.Sprintf(format, args...))
}
