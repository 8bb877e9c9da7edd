package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sabores/internal/commons"
	"sabores/internal/dto"
	apperrors "sabores/internal/errors"
)

type SubmitOrderUseCase interface {
	Submit(ctx context.Context, req dto.SubmitOrderRequest) (*dto.SubmitOrderResult, error)
}

type ListOrdersUseCase interface {
	List(ctx context.Context) (*dto.ListOrdersResult, error)
}

type OrderController struct {
	submitUseCase SubmitOrderUseCase
	listUseCase   ListOrdersUseCase
	logger        *zap.Logger
}

func NewOrderController(submitUseCase SubmitOrderUseCase, listUseCase ListOrdersUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		submitUseCase: submitUseCase,
		listUseCase:   listUseCase,
		logger:        logger,
	}
}

func (c *OrderController) Submit(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		commons.WriteValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	result, err := c.submitUseCase.Submit(r.Context(), req)
	if err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			logger.Info("order rejected", zap.Int("issues", len(ve.Details)))
		}
		commons.WriteError(w, logger, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusCreated, dto.SubmitOrderResponse{
		Success:     true,
		OrderID:     result.Order.ID,
		SavedIn:     string(result.SavedIn),
		WebhookSent: result.WebhookSent,
		Message:     confirmationMessage(result.Order.ID),
	})
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	logger := c.logger.With(zap.String("traceId", uuid.New().String()))

	result, err := c.listUseCase.List(r.Context())
	if err != nil {
		commons.WriteError(w, logger, err)
		return
	}

	commons.WriteJSON(w, logger, http.StatusOK, dto.ListOrdersResponse{
		Orders:  result.Orders,
		Source:  result.Source,
		Message: result.Message,
	})
}

func confirmationMessage(orderID string) string {
	short := orderID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("Pedido #%s recebido com sucesso! Entraremos em contato via WhatsApp.", short)
}
