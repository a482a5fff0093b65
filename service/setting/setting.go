// Package setting provides read access to persisted boolean flags such as
// the root permission marker.
package setting

import "context"

const (
	// DefaultName is the default settings document name
	DefaultName = "setting"
	// RootPermission flags that root privileges were granted
	RootPermission = "RootPermission"
)

// Store reads persisted flags
type Store interface {
	Bool(ctx context.Context, key string) (bool, error)
}

// Writer reads and writes persisted flags
type Writer interface {
	Store
	SetBool(ctx context.Context, key string, value bool) error
}

// Lookup returns flag value, a missing store or a read error yields false
func Lookup(ctx context.Context, store Store, key string) bool {
	if store == nil {
		return false
	}
	value, err := store.Bool(ctx, key)
	if err != nil {
		return false
	}
	return value
}
