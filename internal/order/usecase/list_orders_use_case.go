package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sabores/internal/domain"
	"sabores/internal/dto"
	apperrors "sabores/internal/errors"
)

type OrderLister interface {
	List(ctx context.Context) ([]domain.Order, domain.StorageTier, error)
}

type ListOrdersUseCase struct {
	lister OrderLister
	logger *zap.Logger
}

func NewListOrdersUseCase(lister OrderLister, logger *zap.Logger) *ListOrdersUseCase {
	return &ListOrdersUseCase{
		lister: lister,
		logger: logger,
	}
}

func (uc *ListOrdersUseCase) List(ctx context.Context) (*dto.ListOrdersResult, error) {
	orders, tier, err := uc.lister.List(ctx)
	if err != nil {
		uc.logger.Error("listing orders failed", zap.Error(err))
		return nil, apperrors.NewInternalError("listing orders", err)
	}

	if orders == nil {
		orders = []domain.Order{}
	}

	result := &dto.ListOrdersResult{
		Orders: orders,
		Source: tier.ListSource(),
	}

	// Local-backup listings carry a hint for the operator.
	if result.Source == domain.SourceLocalBackup {
		if len(orders) > 0 {
			result.Message = fmt.Sprintf("%d pedidos encontrados no backup local. Configure o Supabase para persistência em nuvem.", len(orders))
		} else {
			result.Message = "Nenhum pedido encontrado. Faça alguns pedidos primeiro!"
		}
	}

	return result, nil
}
