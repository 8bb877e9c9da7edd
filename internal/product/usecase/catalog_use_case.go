package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sabores/internal/domain"
	"sabores/internal/dto"
	apperrors "sabores/internal/errors"
	"sabores/internal/product/repository"
)

type Service interface {
	List(ctx context.Context, dailyOnly bool) ([]domain.Product, string, error)
	Get(ctx context.Context, id string) (*domain.Product, string, error)
	Create(ctx context.Context, p domain.Product) (string, error)
	Update(ctx context.Context, p domain.Product) (string, error)
	Delete(ctx context.Context, id string) (string, error)
}

type CatalogUseCase struct {
	service Service
	logger  *zap.Logger
	newID   func() string
	now     func() time.Time
}

func NewCatalogUseCase(service Service, logger *zap.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		service: service,
		logger:  logger,
		newID:   func() string { return uuid.New().String() },
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (uc *CatalogUseCase) List(ctx context.Context, dailyOnly bool) (*dto.ProductListResponse, error) {
	products, source, err := uc.service.List(ctx, dailyOnly)
	if err != nil {
		return nil, apperrors.NewInternalError("listing products", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return &dto.ProductListResponse{Products: products, Source: source}, nil
}

func (uc *CatalogUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, source, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, translate(err, "getting product")
	}
	return &dto.ProductResponse{Product: *p, Source: source}, nil
}

func (uc *CatalogUseCase) Create(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := uc.now()
	p := domain.Product{ID: uc.newID(), CreatedAt: now, UpdatedAt: now}
	req.Apply(&p)

	source, err := uc.service.Create(ctx, p)
	if err != nil {
		return nil, translate(err, "creating product")
	}
	return &dto.ProductResponse{Product: p, Source: source}, nil
}

// Update replaces the editable fields of an existing product. The creation
// time is kept from the stored row.
func (uc *CatalogUseCase) Update(ctx context.Context, id string, req dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, _, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, translate(err, "loading product")
	}

	p := *current
	req.Apply(&p)
	p.UpdatedAt = uc.now()

	source, err := uc.service.Update(ctx, p)
	if err != nil {
		return nil, translate(err, "updating product")
	}
	return &dto.ProductResponse{Product: p, Source: source}, nil
}

func (uc *CatalogUseCase) Delete(ctx context.Context, id string) (*dto.DeleteProductResponse, error) {
	source, err := uc.service.Delete(ctx, id)
	if err != nil {
		return nil, translate(err, "deleting product")
	}
	return &dto.DeleteProductResponse{Success: true, Source: source}, nil
}

func translate(err error, action string) error {
	if errors.Is(err, repository.ErrProductNotFound) {
		return apperrors.NewNotFoundError("Produto não encontrado")
	}
	return apperrors.NewInternalError(action, err)
}
