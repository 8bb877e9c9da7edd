package dto

import (
	"strings"

	"sabores/internal/domain"
	apperrors "sabores/internal/errors"
)

type ProductRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Ingredients     string   `json:"ingredients"`
	Price           *float64 `json:"price"`
	ShowPrice       bool     `json:"show_price"`
	Images          []string `json:"images"`
	IsDailyProduct  bool     `json:"is_daily_product"`
	IsCustomProduct bool     `json:"is_custom_product"`
}

func (r ProductRequest) Validate() error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(r.Name) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if r.Price != nil && *r.Price < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must not be negative"})
	}
	for _, img := range r.Images {
		if strings.TrimSpace(img) == "" {
			details = append(details, apperrors.ValidationDetail{Field: "images", Message: "image URLs must not be empty"})
			break
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("invalid product", details...)
	}
	return nil
}

// Apply copies the request onto p, leaving identity and timestamps alone.
func (r ProductRequest) Apply(p *domain.Product) {
	p.Name = strings.TrimSpace(r.Name)
	p.Description = strings.TrimSpace(r.Description)
	p.Ingredients = strings.TrimSpace(r.Ingredients)
	p.Price = nil
	if r.Price != nil {
		price := *r.Price
		p.Price = &price
	}
	p.ShowPrice = r.ShowPrice
	p.Images = append([]string{}, r.Images...)
	p.IsDailyProduct = r.IsDailyProduct
	p.IsCustomProduct = r.IsCustomProduct
}

type ProductResponse struct {
	Product domain.Product `json:"product"`
	Source  string         `json:"source"`
}

type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Source   string           `json:"source"`
}

type DeleteProductResponse struct {
	Success bool   `json:"success"`
	Source  string `json:"source"`
}
