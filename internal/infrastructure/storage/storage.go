package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/storefront-client/internal/config"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is the opaque key-value capability the session persists into. The
// browser original used localStorage; here the backend is chosen by
// configuration.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New builds the configured storage backend.
func New(cfg *config.Config) (Store, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.Storage.FilePath)
	case "redis":
		return NewRedisStore(cfg)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Storage.Backend)
	}
}
