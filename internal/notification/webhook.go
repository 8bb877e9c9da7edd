package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"sabores/internal/config"
	"sabores/internal/domain"
)

// Webhook URLs on these hosts are test endpoints and are never called.
var placeholderDomains = []string{"webhook.site"}

type webhookPayload struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Image   string `json:"image,omitempty"`
	OrderID string `json:"order_id"`
}

// WebhookDispatcher posts new-order messages to the WhatsApp gateway. It is
// best effort: failures are logged and reported as false, never returned.
type WebhookDispatcher struct {
	url      string
	client   *http.Client
	template Template
	logger   *zap.Logger
	now      func() time.Time
}

func NewWebhookDispatcher(cfg config.WebhookConfig, store config.StoreConfig, logger *zap.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{
		url:      strings.TrimSpace(cfg.URL),
		client:   &http.Client{Timeout: cfg.Timeout},
		template: Template{StoreName: store.Name, PixKey: store.PixKey},
		logger:   logger,
		now:      time.Now,
	}
}

func (d *WebhookDispatcher) Enabled() bool {
	if d.url == "" || config.IsPlaceholder(d.url) {
		return false
	}
	for _, host := range placeholderDomains {
		if strings.Contains(d.url, host) {
			return false
		}
	}
	return true
}

func (d *WebhookDispatcher) Dispatch(ctx context.Context, order domain.Order) bool {
	if !d.Enabled() {
		d.logger.Info("webhook not configured or test url, skipping", zap.String("orderId", order.ID))
		return false
	}

	logger := d.logger.With(zap.String("orderId", order.ID), zap.String("url", truncate(d.url, 30)))

	if err := d.post(ctx, order); err != nil {
		logger.Error("webhook delivery failed", zap.Error(err))
		return false
	}

	logger.Info("webhook delivered")
	return true
}

func (d *WebhookDispatcher) post(ctx context.Context, order domain.Order) error {
	body, err := json.Marshal(webhookPayload{
		Phone:   order.CustomerWhatsapp,
		Message: d.template.Format(order, d.now()),
		Image:   order.ProductImage,
		OrderID: order.ID,
	})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
