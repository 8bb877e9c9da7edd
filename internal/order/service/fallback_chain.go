package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sabores/internal/domain"
)

var ErrNoBackends = errors.New("no order backends configured")

// OrderBackend is one tier of the persistence chain.
type OrderBackend interface {
	Tier() domain.StorageTier
	Save(ctx context.Context, order domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
}

// FallbackChain tries its backends in order and stops at the first one that
// succeeds. A failed backend is never retried for the same call.
type FallbackChain struct {
	backends []OrderBackend
	logger   *zap.Logger
}

func NewFallbackChain(logger *zap.Logger, backends ...OrderBackend) *FallbackChain {
	return &FallbackChain{
		backends: backends,
		logger:   logger,
	}
}

// Save returns the tier that accepted the order.
func (c *FallbackChain) Save(ctx context.Context, order domain.Order) (domain.StorageTier, error) {
	lastErr := ErrNoBackends

	for _, backend := range c.backends {
		err := backend.Save(ctx, order)
		if err == nil {
			c.logger.Info("order persisted",
				zap.String("orderId", order.ID), zap.String("tier", string(backend.Tier())))
			return backend.Tier(), nil
		}

		c.logger.Warn("order backend failed, falling back",
			zap.String("orderId", order.ID), zap.String("tier", string(backend.Tier())), zap.Error(err))
		lastErr = err
	}

	return "", fmt.Errorf("saving order %s: %w", order.ID, lastErr)
}

// List returns the orders of the first backend that answers with at least one
// row. An empty answer moves on to the next tier, except for the last tier
// whose answer is returned as is.
func (c *FallbackChain) List(ctx context.Context) ([]domain.Order, domain.StorageTier, error) {
	lastErr := ErrNoBackends

	for i, backend := range c.backends {
		orders, err := backend.List(ctx)
		if err != nil {
			c.logger.Warn("order backend list failed, falling back",
				zap.String("tier", string(backend.Tier())), zap.Error(err))
			lastErr = err
			continue
		}

		if len(orders) > 0 || i == len(c.backends)-1 {
			c.logger.Debug("orders listed",
				zap.String("tier", string(backend.Tier())), zap.Int("count", len(orders)))
			return orders, backend.Tier(), nil
		}

		c.logger.Debug("order backend returned no rows, falling back",
			zap.String("tier", string(backend.Tier())))
	}

	return nil, "", fmt.Errorf("listing orders: %w", lastErr)
}
