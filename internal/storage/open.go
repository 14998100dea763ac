package storage

import (
	"strings"
)

const (
	redisScheme  = "redis://"
	redissScheme = "rediss://"
	dirScheme    = "dir://"
	memoryDSN    = "memory://"
)

// New selects a Provider for dsn without connecting:
//
//	postgres://, postgresql://  PostgreSQL
//	redis://, rediss://         Redis
//	dir://<path>                one file per key under <path>
//	memory://                   volatile, for tests and dry runs
//	anything else               SQLite database file
func New(dsn string) Provider {
	switch {
	case IsPostgresDSN(dsn):
		return NewPostgresStore(dsn)
	case strings.HasPrefix(dsn, redisScheme), strings.HasPrefix(dsn, redissScheme):
		return NewRedisStore(dsn)
	case strings.HasPrefix(dsn, dirScheme):
		return NewDiskvStore(strings.TrimPrefix(dsn, dirScheme))
	case dsn == memoryDSN:
		return NewMemoryStore()
	default:
		return NewSQLiteStore(dsn)
	}
}

// Backend names the provider New selects for dsn.
func Backend(dsn string) string {
	switch {
	case IsPostgresDSN(dsn):
		return "postgres"
	case strings.HasPrefix(dsn, redisScheme), strings.HasPrefix(dsn, redissScheme):
		return "redis"
	case strings.HasPrefix(dsn, dirScheme):
		return "diskv"
	case dsn == memoryDSN:
		return "memory"
	default:
		return "sqlite"
	}
}
