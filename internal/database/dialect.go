package database

import (
	"strings"

	"github.com/pkg/errors"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDatabaseURL picks the storage backend from DATABASE_URL and returns the
// DSN to hand to that backend's driver.
func ParseDatabaseURL(databaseURL string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return Postgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		if path == "" {
			return "", "", errors.New("sqlite database URL has no path")
		}
		return SQLite, path, nil
	case strings.HasPrefix(databaseURL, "file:"):
		return SQLite, databaseURL, nil
	default:
		return "", "", errors.Errorf("unsupported database URL scheme in %q", redact(databaseURL))
	}
}

func redact(databaseURL string) string {
	scheme, rest, ok := strings.Cut(databaseURL, "://")
	if !ok {
		return "<invalid>"
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = rest[at+1:]
	}
	return scheme + "://" + rest
}
