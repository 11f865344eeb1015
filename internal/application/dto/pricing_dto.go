package dto

import "time"

// PricingRequest entrada para criar ou editar um preço por local.
type PricingRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
	Price      string `json:"preco" validate:"required"`
	SaleUnit   string `json:"und_medida_venda" validate:"required,und_medida"`
}

// PricingListRequest filtros da listagem de preços.
type PricingListRequest struct {
	ProductID  string `query:"product_id"`
	LocationID string `query:"location_id"`
}

// PricingResponse saída de um preço.
type PricingResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductCode  string    `json:"product_cod,omitempty"`
	ProductName  string    `json:"product_nome,omitempty"`
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_nome,omitempty"`
	Price        string    `json:"preco"`
	SaleUnit     string    `json:"und_medida_venda"`
	UpdatedAt    time.Time `json:"updated_at"`
}
