package devicestore

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"sabores/internal/infrastructure/sqlite"
)

// Open opens the device store at path. The returned db must be closed by
// the caller.
func Open(ctx context.Context, path string, logger *zap.Logger) (*LocalOrderStorage, *sql.DB, error) {
	db, err := sqlite.NewConnection(path)
	if err != nil {
		return nil, nil, err
	}

	kv, err := NewKVStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return NewLocalOrderStorage(kv, logger.Named("devicestore")), db, nil
}
