// Package cache provides the short-lived whole-page cache used by the feed
// composer. Values are fully rendered page payloads keyed by (view, page);
// writers invalidate a whole view, readers only populate on a miss.
package cache

import (
	"context"
	"fmt"
)

type Cache interface {
	// Get returns the cached payload for the key and whether it was present
	// and unexpired.
	Get(ctx context.Context, view string, page int) ([]byte, bool, error)
	// Set stores the payload under the key for the cache's time-to-live.
	Set(ctx context.Context, view string, page int, payload []byte) error
	// Invalidate drops every page of the view immediately, regardless of
	// remaining time-to-live.
	Invalidate(ctx context.Context, view string) error
	// Clear drops everything.
	Clear(ctx context.Context) error
}

func Key(view string, page int) string {
	return fmt.Sprintf("%s:%d", view, page)
}
