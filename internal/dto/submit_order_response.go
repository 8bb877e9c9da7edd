package dto

import "sabores/internal/domain"

type SubmitOrderResult struct {
	Order       domain.Order
	SavedIn     domain.StorageTier
	WebhookSent bool
}

type SubmitOrderResponse struct {
	Success     bool   `json:"success"`
	OrderID     string `json:"order_id"`
	SavedIn     string `json:"saved_in"`
	WebhookSent bool   `json:"webhook_sent"`
	Message     string `json:"message"`
}

type ListOrdersResult struct {
	Orders  []domain.Order
	Source  string
	Message string
}

type ListOrdersResponse struct {
	Orders  []domain.Order `json:"orders"`
	Source  string         `json:"source"`
	Message string         `json:"message,omitempty"`
}
