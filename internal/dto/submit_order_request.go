package dto

import (
	"strings"
	"time"

	"sabores/internal/domain"
	apperrors "sabores/internal/errors"
)

type SubmitOrderRequest struct {
	ProductID        string   `json:"product_id"`
	ProductName      string   `json:"product_name"`
	ProductImage     string   `json:"product_image,omitempty"`
	ProductPrice     *float64 `json:"product_price,omitempty"`
	CustomerName     string   `json:"customer_name"`
	CustomerAddress  string   `json:"customer_address"`
	CustomerWhatsapp string   `json:"customer_whatsapp"`
	DeliveryDate     string   `json:"delivery_date,omitempty"`
	PaymentMethod    string   `json:"payment_method,omitempty"`
	Observations     string   `json:"observations,omitempty"`
}

// Validate checks the required fields and the payment method. Every problem
// is reported, not only the first one.
func (r SubmitOrderRequest) Validate() error {
	var details []apperrors.ValidationDetail

	required := []struct {
		field string
		value string
	}{
		{"product_id", r.ProductID},
		{"customer_name", r.CustomerName},
		{"customer_address", r.CustomerAddress},
		{"customer_whatsapp", r.CustomerWhatsapp},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   f.field,
				Message: f.field + " is required",
			})
		}
	}

	if pm := strings.TrimSpace(r.PaymentMethod); pm != "" && !domain.PaymentMethod(pm).Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "payment_method",
			Message: "payment_method must be one of: pix, card",
		})
	}

	if r.ProductPrice != nil && *r.ProductPrice < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "product_price",
			Message: "product_price must be non-negative",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("missing or invalid order fields", details...)
	}
	return nil
}

// ToOrder builds a pending order from the submission. The price is copied as
// submitted.
func (r SubmitOrderRequest) ToOrder(id string, createdAt time.Time) domain.Order {
	payment := domain.PaymentMethod(strings.TrimSpace(r.PaymentMethod))
	if payment == "" {
		payment = domain.PaymentPix
	}

	var price *float64
	if r.ProductPrice != nil {
		p := *r.ProductPrice
		price = &p
	}

	return domain.Order{
		ID:               id,
		ProductID:        strings.TrimSpace(r.ProductID),
		ProductName:      strings.TrimSpace(r.ProductName),
		ProductImage:     r.ProductImage,
		ProductPrice:     price,
		CustomerName:     strings.TrimSpace(r.CustomerName),
		CustomerAddress:  strings.TrimSpace(r.CustomerAddress),
		CustomerWhatsapp: strings.TrimSpace(r.CustomerWhatsapp),
		DeliveryDate:     strings.TrimSpace(r.DeliveryDate),
		PaymentMethod:    payment,
		Notes:            strings.TrimSpace(r.Observations),
		Status:           domain.OrderStatusPending,
		CreatedAt:        createdAt,
	}
}
