package testutil

import (
	"fmt"
	"time"

	"sabores/internal/domain"
)

func Float(v float64) *float64 {
	return &v
}

// NewOrder returns a valid pending order whose fields derive from n.
func NewOrder(n int) domain.Order {
	return domain.Order{
		ID:               fmt.Sprintf("order-%03d", n),
		ProductID:        fmt.Sprintf("product-%d", n%5),
		ProductName:      "Bolo de Cenoura",
		ProductPrice:     Float(35.9),
		CustomerName:     fmt.Sprintf("Cliente %d", n),
		CustomerAddress:  "Rua das Flores, 123",
		CustomerWhatsapp: "(11) 98765-4321",
		PaymentMethod:    domain.PaymentPix,
		Status:           domain.OrderStatusPending,
		CreatedAt:        time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Minute),
	}
}
