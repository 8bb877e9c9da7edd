package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"sabores/internal/config"
	"sabores/internal/domain"
	"sabores/internal/dto"
)

// APIError is a non-2xx answer from the server that the client does not
// recover from.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type DeviceStore interface {
	SaveOrder(ctx context.Context, order domain.Order) (string, error)
}

// OrderClient talks to the storefront API. When the server cannot be
// reached, or fails with a 5xx, submitted orders are kept in the device
// store instead.
type OrderClient struct {
	baseURL string
	client  *http.Client
	device  DeviceStore
	logger  *zap.Logger
	now     func() time.Time
}

func NewOrderClient(cfg config.ClientConfig, device DeviceStore, logger *zap.Logger) *OrderClient {
	return &OrderClient{
		baseURL: strings.TrimRight(cfg.ServerURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		device:  device,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (c *OrderClient) SubmitOrder(ctx context.Context, req dto.SubmitOrderRequest) (*dto.SubmitOrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp dto.SubmitOrderResponse
	_, err := c.doJSON(ctx, http.MethodPost, "/api/orders", req, &resp)
	if err == nil {
		return &resp, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
		return nil, err
	}

	c.logger.Warn("server unavailable, keeping order on this device", zap.Error(err))
	return c.saveLocally(ctx, req)
}

func (c *OrderClient) saveLocally(ctx context.Context, req dto.SubmitOrderRequest) (*dto.SubmitOrderResponse, error) {
	id, err := c.device.SaveOrder(ctx, req.ToOrder("", c.now()))
	if err != nil {
		return nil, fmt.Errorf("saving order on device: %w", err)
	}

	return &dto.SubmitOrderResponse{
		Success:     true,
		OrderID:     id,
		SavedIn:     string(domain.TierDevice),
		WebhookSent: false,
		Message:     "Pedido salvo neste dispositivo. Será necessário reenviar quando o servidor estiver disponível.",
	}, nil
}

func (c *OrderClient) ListOrders(ctx context.Context) (*dto.ListOrdersResponse, error) {
	var resp dto.ListOrdersResponse
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/orders", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login reports a rejected login as a response with Success false, not as an
// error.
func (c *OrderClient) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	_, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: password}, &resp)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return &dto.LoginResponse{Success: false, Error: apiErr.Message}, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *OrderClient) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var resp dto.ProductResponse
	if _, err := c.doJSON(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

func (c *OrderClient) doJSON(ctx context.Context, method, path string, in, out interface{}) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// errorMessage picks the most readable message out of the server's error
// bodies.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(body))
}
