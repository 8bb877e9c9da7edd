package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sabores/internal/domain"
	"sabores/internal/dto"
	apperrors "sabores/internal/errors"
)

type OrderStore interface {
	Save(ctx context.Context, order domain.Order) (domain.StorageTier, error)
}

type Notifier interface {
	Dispatch(ctx context.Context, order domain.Order) bool
}

type SubmitOrderUseCase struct {
	store    OrderStore
	notifier Notifier
	logger   *zap.Logger
	newID    func() string
	now      func() time.Time
}

func NewSubmitOrderUseCase(store OrderStore, notifier Notifier, logger *zap.Logger) *SubmitOrderUseCase {
	return &SubmitOrderUseCase{
		store:    store,
		notifier: notifier,
		logger:   logger,
		newID:    uuid.NewString,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates the request, persists the order through the fallback
// chain and then tries to notify the shop. The notification outcome never
// affects the result.
func (uc *SubmitOrderUseCase) Submit(ctx context.Context, req dto.SubmitOrderRequest) (*dto.SubmitOrderResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order := req.ToOrder(uc.newID(), uc.now())
	logger := uc.logger.With(zap.String("orderId", order.ID))

	tier, err := uc.store.Save(ctx, order)
	if err != nil {
		logger.Error("order could not be persisted", zap.Error(err))
		return nil, apperrors.NewInternalError("persisting order", err)
	}

	sent := uc.notifier.Dispatch(ctx, order)

	logger.Info("order received",
		zap.String("customer", order.CustomerName),
		zap.String("productId", order.ProductID),
		zap.String("paymentMethod", string(order.PaymentMethod)),
		zap.String("savedIn", string(tier)),
		zap.Bool("webhookSent", sent),
	)

	return &dto.SubmitOrderResult{
		Order:       order,
		SavedIn:     tier,
		WebhookSent: sent,
	}, nil
}
