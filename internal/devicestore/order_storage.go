package devicestore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sabores/internal/domain"
)

const (
	StorageKey = "sabores_pedidos"
	MaxOrders  = 100
)

var ErrOrderNotFound = errors.New("local order not found")

type KeyValue interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// LocalOrderStorage keeps the device's backup of orders that could not reach
// the server: a newest-first JSON list under one key, capped at MaxOrders.
type LocalOrderStorage struct {
	mu     sync.Mutex
	kv     KeyValue
	logger *zap.Logger
	now    func() time.Time
	newID  func(now time.Time) string
}

func NewLocalOrderStorage(kv KeyValue, logger *zap.Logger) *LocalOrderStorage {
	return &LocalOrderStorage{
		kv:     kv,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  newLocalID,
	}
}

// SaveOrder stores a copy of order with a fresh local id, the current time
// and status pending, and returns the new id.
func (s *LocalOrderStorage) SaveOrder(ctx context.Context, order domain.Order) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	now := s.now()
	order.ID = s.newID(now)
	order.CreatedAt = now
	order.Status = domain.OrderStatusPending
	order.UpdatedAt = nil

	orders = append([]domain.Order{order}, orders...)
	if len(orders) > MaxOrders {
		orders = orders[:MaxOrders]
	}

	if err := s.store(ctx, orders); err != nil {
		return "", fmt.Errorf("saving local order: %w", err)
	}

	s.logger.Info("order saved locally",
		zap.String("orderId", order.ID),
		zap.String("customer", order.CustomerName),
		zap.String("product", order.ProductName))
	return order.ID, nil
}

// GetOrders returns the stored orders, newest first. An unreadable list is
// treated as empty.
func (s *LocalOrderStorage) GetOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *LocalOrderStorage) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := s.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// UpdateOrderStatus sets the status and update time of one order. It reports
// false when no order has that id.
func (s *LocalOrderStorage) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("invalid order status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	for i := range orders {
		if orders[i].ID != id {
			continue
		}
		now := s.now()
		orders[i].Status = status
		orders[i].UpdatedAt = &now
		if err := s.store(ctx, orders); err != nil {
			return false, fmt.Errorf("updating local order: %w", err)
		}
		return true, nil
	}
	return false, nil
}

func (s *LocalOrderStorage) ClearOrders(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.RemoveItem(ctx, StorageKey)
}

// ExportOrders renders the stored orders as indented JSON.
func (s *LocalOrderStorage) ExportOrders(ctx context.Context) (string, error) {
	orders, err := s.GetOrders(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding local orders: %w", err)
	}
	return string(data), nil
}

func (s *LocalOrderStorage) Count(ctx context.Context) (int, error) {
	orders, err := s.GetOrders(ctx)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

func (s *LocalOrderStorage) PendingCount(ctx context.Context) (int, error) {
	orders, err := s.GetOrders(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, o := range orders {
		if o.Status == domain.OrderStatusPending {
			n++
		}
	}
	return n, nil
}

func (s *LocalOrderStorage) load(ctx context.Context) ([]domain.Order, error) {
	raw, ok, err := s.kv.GetItem(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("reading local orders: %w", err)
	}
	if !ok || raw == "" {
		return []domain.Order{}, nil
	}

	var orders []domain.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		s.logger.Warn("local orders unreadable, starting empty", zap.Error(err))
		return []domain.Order{}, nil
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *LocalOrderStorage) store(ctx context.Context, orders []domain.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encoding local orders: %w", err)
	}
	return s.kv.SetItem(ctx, StorageKey, string(data))
}

// newLocalID builds local_<unix ms>_<9 base36 chars>.
func newLocalID(now time.Time) string {
	id := uuid.New()
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(id[:8]), 36)
	if len(suffix) < 9 {
		suffix = strings.Repeat("0", 9-len(suffix)) + suffix
	}
	return fmt.Sprintf("local_%d_%s", now.UnixMilli(), suffix[:9])
}
