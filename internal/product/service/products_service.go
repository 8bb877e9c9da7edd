package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sabores/internal/domain"
	"sabores/internal/product/repository"
)

var ErrNoRepositories = errors.New("no catalog repositories configured")

type Repository interface {
	Source() string
	FindAll(ctx context.Context, dailyOnly bool) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) error
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id string) error
}

// ProductService reads and writes the catalog through an ordered list of
// repositories, moving to the next one when a repository fails.
type ProductService struct {
	repos  []Repository
	logger *zap.Logger
}

func NewService(logger *zap.Logger, repos ...Repository) *ProductService {
	return &ProductService{repos: repos, logger: logger}
}

// List returns the first non-empty listing. The last repository's answer is
// returned even when empty.
func (s *ProductService) List(ctx context.Context, dailyOnly bool) ([]domain.Product, string, error) {
	lastErr := ErrNoRepositories

	for i, repo := range s.repos {
		products, err := repo.FindAll(ctx, dailyOnly)
		if err != nil {
			s.logger.Warn("catalog list failed, falling back",
				zap.String("source", repo.Source()), zap.Error(err))
			lastErr = err
			continue
		}
		if len(products) > 0 || i == len(s.repos)-1 {
			return products, repo.Source(), nil
		}
	}

	return nil, "", fmt.Errorf("listing products: %w", lastErr)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, string, error) {
	var lastErr error = ErrNoRepositories
	notFound := 0

	for _, repo := range s.repos {
		p, err := repo.FindByID(ctx, id)
		if err == nil {
			return p, repo.Source(), nil
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			notFound++
		} else {
			s.logger.Warn("catalog lookup failed, falling back",
				zap.String("source", repo.Source()), zap.String("productId", id), zap.Error(err))
		}
		lastErr = err
	}

	if notFound > 0 {
		return nil, "", repository.ErrProductNotFound
	}
	return nil, "", fmt.Errorf("getting product %s: %w", id, lastErr)
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (string, error) {
	return s.write(ctx, "create", p.ID, func(repo Repository) error {
		return repo.Create(ctx, p)
	})
}

func (s *ProductService) Update(ctx context.Context, p domain.Product) (string, error) {
	return s.write(ctx, "update", p.ID, func(repo Repository) error {
		return repo.Update(ctx, p)
	})
}

func (s *ProductService) Delete(ctx context.Context, id string) (string, error) {
	return s.write(ctx, "delete", id, func(repo Repository) error {
		return repo.Delete(ctx, id)
	})
}

// write applies op to each repository in turn and stops at the first
// success. Not-found wins over other failures when no repository succeeds.
func (s *ProductService) write(ctx context.Context, action, id string, op func(Repository) error) (string, error) {
	var lastErr error = ErrNoRepositories
	notFound := false

	for _, repo := range s.repos {
		err := op(repo)
		if err == nil {
			s.logger.Info("catalog "+action,
				zap.String("source", repo.Source()), zap.String("productId", id))
			return repo.Source(), nil
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			notFound = true
		} else {
			s.logger.Warn("catalog "+action+" failed, falling back",
				zap.String("source", repo.Source()), zap.String("productId", id), zap.Error(err))
		}
		lastErr = err
	}

	if notFound {
		return "", repository.ErrProductNotFound
	}
	return "", fmt.Errorf("%s product %s: %w", action, id, lastErr)
}
