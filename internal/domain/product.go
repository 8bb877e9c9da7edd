package domain

import "time"

type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Ingredients     string    `json:"ingredients"`
	Price           *float64  `json:"price"`
	ShowPrice       bool      `json:"show_price"`
	Images          []string  `json:"images"`
	IsDailyProduct  bool      `json:"is_daily_product"`
	IsCustomProduct bool      `json:"is_custom_product"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PublicPrice is the price a customer sees, nil when the shop hides it.
func (p Product) PublicPrice() *float64 {
	if !p.ShowPrice || p.Price == nil {
		return nil
	}
	price := *p.Price
	return &price
}

func (p Product) CoverImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
