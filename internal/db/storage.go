// Package db provides key/value persistence with the shape of browser local
// storage: whole values replaced under a named key.
package db

import (
	"context"
	"fmt"
)

// LocalStorage is implemented by every backend in this package.
type LocalStorage interface {
	GetItem(ctx context.Context, key string) ([]byte, bool, error)
	SetItem(ctx context.Context, key string, value []byte) error
	RemoveItem(ctx context.Context, key string) error
	Close() error
}

// Drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Driver      string
	SQLiteDSN   string
	Dir         string
	RedisAddr   string
	RedisPrefix string
}

// Open builds the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (LocalStorage, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemoryStorage(), nil
	case DriverSQLite, "":
		return OpenSQLiteStorage(ctx, opts.SQLiteDSN)
	case DriverFile:
		return NewFileStorage(opts.Dir)
	case DriverRedis:
		return NewRedisStorage(ctx, opts.RedisAddr, opts.RedisPrefix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
