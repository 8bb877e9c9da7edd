package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"sabores/internal/domain"
)

const DefaultCapacity = 100

// FileOrderStore is the server-side local fallback: a capped, newest-first
// in-process list mirrored to a single JSON file.
//
// The list is populated from the file on first access while it is empty,
// and every insert rewrites the whole file. The mutex only protects the
// in-memory slice. Each snapshot is written to a temp file and renamed over
// the mirror, so concurrent inserts leave one complete snapshot on disk,
// possibly an older one.
type FileOrderStore struct {
	mu       sync.Mutex
	orders   []domain.Order
	path     string
	capacity int
	logger   *zap.Logger
}

func NewFileOrderStore(path string, capacity int, logger *zap.Logger) *FileOrderStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &FileOrderStore{
		path:     path,
		capacity: capacity,
		logger:   logger,
	}
}

func (s *FileOrderStore) Tier() domain.StorageTier {
	return domain.TierMemoryFile
}

// Save prepends the order, evicts beyond capacity and mirrors the list to
// disk. A failed file write is logged; the order stays accepted in memory.
func (s *FileOrderStore) Save(_ context.Context, order domain.Order) error {
	snapshot := s.insert(order)

	if err := s.writeFile(snapshot); err != nil {
		s.logger.Error("failed to mirror orders to file",
			zap.String("path", s.path), zap.String("orderId", order.ID), zap.Error(err))
		return nil
	}

	s.logger.Info("order saved to local backup",
		zap.String("orderId", order.ID), zap.Int("total", len(snapshot)))
	return nil
}

// List returns a copy of the in-memory list, newest first.
func (s *FileOrderStore) List(_ context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadIfEmptyLocked()

	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

func (s *FileOrderStore) insert(order domain.Order) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadIfEmptyLocked()

	size := len(s.orders) + 1
	if size > s.capacity {
		size = s.capacity
	}
	// Always a fresh slice, so snapshots handed out earlier stay immutable.
	orders := make([]domain.Order, 0, size)
	orders = append(orders, order)
	orders = append(orders, s.orders[:size-1]...)

	s.orders = orders
	return orders
}

func (s *FileOrderStore) loadIfEmptyLocked() {
	if len(s.orders) > 0 {
		return
	}

	orders, err := s.readFile()
	if err != nil {
		s.logger.Error("failed to load orders from file", zap.String("path", s.path), zap.Error(err))
		return
	}
	if len(orders) > s.capacity {
		orders = orders[:s.capacity]
	}
	if len(orders) > 0 {
		s.logger.Info("orders loaded from file", zap.Int("count", len(orders)))
	}
	s.orders = orders
}

func (s *FileOrderStore) readFile() ([]domain.Order, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading orders file: %w", err)
	}

	var orders []domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("parsing orders file: %w", err)
	}
	return orders, nil
}

func (s *FileOrderStore) writeFile(orders []domain.Order) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding orders: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp orders file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing orders file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("writing orders file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing orders file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing orders file: %w", err)
	}
	return nil
}
