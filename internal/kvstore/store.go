package kvstore

import (
	"context"
	"errors"
)

// Common errors returned by stores
var ErrKeyNotFound = errors.New("key not found")

// Well-known keys. The layout matches the original storefront so state
// written by an older deployment stays readable.
const (
	KeyToken     = "token"
	KeyUser      = "user"
	KeyCart      = "cart"
	KeyWatermark = "lastNotificationCheck"
)

// Store is the persistence seam for all client-side state: the session
// credentials, the cart, and the notification watermark. Values are plain
// strings; callers own their own encoding.
type Store interface {
	// Get returns the value stored under key, or ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value
	Set(ctx context.Context, key, value string) error

	// Remove deletes key; removing an absent key is not an error
	Remove(ctx context.Context, key string) error
}

// Noop discards writes and reports every key as absent. It stands in when
// no persistent context is available; callers already treat a missing key
// as empty state, so nothing above this layer needs to care.
type Noop struct{}

func (Noop) Get(context.Context, string) (string, error) { return "", ErrKeyNotFound }
func (Noop) Set(context.Context, string, string) error   { return nil }
func (Noop) Remove(context.Context, string) error        { return nil }
