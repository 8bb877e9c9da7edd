package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sabores/internal/commons"
	"sabores/internal/dto"
	apperrors "sabores/internal/errors"
)

type CatalogUseCase interface {
	List(ctx context.Context, dailyOnly bool) (*dto.ProductListResponse, error)
	Get(ctx context.Context, id string) (*dto.ProductResponse, error)
	Create(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, id string, req dto.ProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id string) (*dto.DeleteProductResponse, error)
}

type Controller struct {
	useCase CatalogUseCase
	logger  *zap.Logger
}

func NewController(useCase CatalogUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	dailyOnly := false
	if raw := r.URL.Query().Get("daily"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			commons.WriteValidationError(w, logger, "invalid daily filter", apperrors.ValidationDetail{
				Field:   "daily",
				Message: "daily must be true or false",
			})
			return
		}
		dailyOnly = v
	}

	resp, err := c.useCase.List(r.Context(), dailyOnly)
	if err != nil {
		commons.WriteError(w, logger, err)
		return
	}
	commons.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	resp, err := c.useCase.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		commons.WriteError(w, logger, err)
		return
	}
	commons.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	req, ok := c.decode(w, r, logger)
	if !ok {
		return
	}

	resp, err := c.useCase.Create(r.Context(), req)
	if err != nil {
		commons.WriteError(w, logger, err)
		return
	}
	commons.WriteJSON(w, logger, http.StatusCreated, resp)
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	req, ok := c.decode(w, r, logger)
	if !ok {
		return
	}

	resp, err := c.useCase.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		commons.WriteError(w, logger, err)
		return
	}
	commons.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	resp, err := c.useCase.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		commons.WriteError(w, logger, err)
		return
	}
	commons.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *Controller) decode(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (dto.ProductRequest, bool) {
	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		commons.WriteValidationError(w, logger, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return req, false
	}
	return req, true
}

func (c *Controller) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}
