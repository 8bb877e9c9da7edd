package domain

import "time"

type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "pix"
	PaymentCard PaymentMethod = "card"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentPix || p == PaymentCard
}

type OrderStatus string

// Orders are created as pending. No server operation moves them forward;
// only the device-local store exposes a status update.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusSent      OrderStatus = "sent"
	OrderStatusDelivered OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusSent, OrderStatusDelivered:
		return true
	}
	return false
}

// Order is one customer request. ProductName, ProductImage and ProductPrice
// are a snapshot taken at submission time and are never re-read from the
// catalog.
type Order struct {
	ID               string        `json:"id"`
	ProductID        string        `json:"product_id"`
	ProductName      string        `json:"product_name"`
	ProductImage     string        `json:"product_image,omitempty"`
	ProductPrice     *float64      `json:"product_price,omitempty"`
	CustomerName     string        `json:"customer_name"`
	CustomerAddress  string        `json:"customer_address"`
	CustomerWhatsapp string        `json:"customer_whatsapp"`
	DeliveryDate     string        `json:"delivery_date,omitempty"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	Notes            string        `json:"notes,omitempty"`
	Status           OrderStatus   `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        *time.Time    `json:"updated_at,omitempty"`
}
