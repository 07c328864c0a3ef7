// Package ctxutil provides context utility functions.
package ctxutil

import "context"

// Canceled reports whether the context is done, returning its error
// (Canceled or DeadlineExceeded) and nil otherwise. Store operations
// call it at entry so a dead context never reaches the filesystem.
//
// ctx.Err() already returns nil while Done is open, so no select is
// needed.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
