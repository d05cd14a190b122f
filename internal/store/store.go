// Package store persists endpoint schemas per subject.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mockapi/internal/mockgen"
)

// ErrNotFound is returned when no schema is stored for an endpoint.
var ErrNotFound = errors.New("schema not found")

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown store driver")

// Store saves and loads endpoint schemas. A save replaces the whole field
// list for (subject, endpoint).
type Store interface {
	Save(ctx context.Context, subject, endpoint string, fields []mockgen.Field) error
	Load(ctx context.Context, subject, endpoint string) ([]mockgen.Field, error)
	List(ctx context.Context, subject string) ([]string, error)
	Close() error
}

// Drivers accepted by Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and configures a Store backend.
type Config struct {
	Driver    string `yaml:"driver"`
	DataDir   string `yaml:"data_dir"`
	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
	DSN       string `yaml:"dsn"`
}

// Open builds the Store named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch strings.ToLower(cfg.Driver) {
	case DriverMemory, "":
		s = NewMemoryStore()
	case DriverFile:
		s, err = NewFileStore(cfg.DataDir)
	case DriverRedis:
		s, err = DialRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	case DriverSQLite, DriverPostgres:
		s, err = OpenSQL(cfg.Driver, cfg.DSN)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func cloneFields(fields []mockgen.Field) []mockgen.Field {
	if fields == nil {
		return []mockgen.Field{}
	}
	return append([]mockgen.Field(nil), fields...)
}
