package storage

import (
	"context"
	"fmt"
)

// Open returns the KV backend for driver. dsn is a file path for sqlite, a
// database URL for libsql and postgres, and ignored for memory. Postgres
// migrations must have been applied with RunMigrations.
func Open(ctx context.Context, driver, dsn string) (KV, error) {
	switch driver {
	case DriverSQLite, DriverLibSQL:
		db, err := OpenSQL(ctx, driver, dsn)
		if err != nil {
			return nil, err
		}
		return db, nil
	case DriverPostgres:
		db, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return db, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
