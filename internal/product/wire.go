package product

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"sabores/internal/domain"
	"sabores/internal/infrastructure/database"
	"sabores/internal/product/controller"
	"sabores/internal/product/repository"
	"sabores/internal/product/service"
	"sabores/internal/product/usecase"
)

// LocalSource labels answers served by the local SQLite catalog.
const LocalSource = "local"

// NewModule wires the catalog. remoteDB may be nil; localDB is the SQLite
// catalog and must already have its schema.
func NewModule(remoteDB *sql.DB, remoteDriver string, localDB *sql.DB, logger *zap.Logger) *controller.Controller {
	logger = logger.Named("product")

	remote := repository.NewSQLRepository(remoteDB, remoteDriver, domain.SourceRemote)
	local := repository.NewSQLRepository(localDB, database.DriverSQLite, LocalSource)

	svc := service.NewService(logger, remote, local)
	return controller.NewController(usecase.NewCatalogUseCase(svc, logger), logger)
}

// PrepareLocalCatalog creates the products table in the local catalog.
func PrepareLocalCatalog(ctx context.Context, localDB *sql.DB) error {
	return repository.NewSQLRepository(localDB, database.DriverSQLite, LocalSource).EnsureSchema(ctx)
}
