package storage

import (
	"context"

	"github.com/PavaniTiago/atly-quiz-funnel/internal/domain/repositories"
)

var (
	_ repositories.KeyValueStore = (*MemoryStore)(nil)
	_ repositories.KeyValueStore = (*RedisStore)(nil)
	_ repositories.KeyValueStore = (*PostgresStore)(nil)
	_ repositories.KeyValueStore = DisabledStore{}
)

// DisabledStore fails every operation, the equivalent of a browser with
// storage turned off.
type DisabledStore struct{}

func (DisabledStore) Get(context.Context, string, string) (string, bool, error) {
	return "", false, repositories.ErrStorageUnavailable
}

func (DisabledStore) Set(context.Context, string, string, string) error {
	return repositories.ErrStorageUnavailable
}

func (DisabledStore) Delete(context.Context, string, string) error {
	return repositories.ErrStorageUnavailable
}
