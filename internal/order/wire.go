package order

import (
	"database/sql"

	"go.uber.org/zap"

	"sabores/internal/config"
	"sabores/internal/notification"
	"sabores/internal/order/controller"
	"sabores/internal/order/repository"
	"sabores/internal/order/service"
	"sabores/internal/order/usecase"
)

// NewModule wires order intake. remoteDB may be nil when the remote store is
// not configured; the chain then always lands in the local file store.
func NewModule(remoteDB *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.OrderController {
	logger = logger.Named("order")

	remoteRepo := repository.NewRemoteOrderRepository(remoteDB, cfg.Database.Driver)
	fileStore := repository.NewFileOrderStore(cfg.Fallback.FilePath, cfg.Fallback.Capacity, logger)
	chain := service.NewFallbackChain(logger, remoteRepo, fileStore)

	notifier := notification.NewWebhookDispatcher(cfg.Webhook, cfg.Store, logger.Named("webhook"))

	return controller.NewOrderController(
		usecase.NewSubmitOrderUseCase(chain, notifier, logger),
		usecase.NewListOrdersUseCase(chain, logger),
		logger,
	)
}
