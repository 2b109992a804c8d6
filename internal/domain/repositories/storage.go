package repositories

import (
	"context"
	"errors"
)

// ErrStorageUnavailable is returned by stores that cannot serve reads or
// writes at all (disabled, unreachable, over quota).
var ErrStorageUnavailable = errors.New("storage unavailable")

// KeyValueStore is visitor-scoped string storage, the server side of the
// browser's origin-scoped local storage. Missing keys are reported with
// found=false and a nil error.
type KeyValueStore interface {
	Get(ctx context.Context, scope, key string) (value string, found bool, err error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
}
