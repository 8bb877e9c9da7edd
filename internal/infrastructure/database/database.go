package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sabores/internal/config"
	"sabores/internal/infrastructure/mysql"
	"sabores/internal/infrastructure/postgres"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite3"
)

// OpenRemote opens the remote store for the configured driver. It does not
// verify connectivity; use Ping for that.
func OpenRemote(cfg config.DatabaseConfig) (*sql.DB, error) {
	switch config.NormalizeDriver(cfg.Driver) {
	case DriverPostgres:
		return postgres.NewConnection(cfg)
	case DriverMySQL:
		return mysql.NewConnection(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func Ping(ctx context.Context, db *sql.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

// Rebind rewrites '?' placeholders into the driver's bind syntax. An empty
// driver is postgres, matching OpenRemote.
func Rebind(driver, query string) string {
	if config.NormalizeDriver(driver) != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
