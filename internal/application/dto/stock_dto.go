package dto

import "time"

// StockEntryRequest entrada de estoque, opcionalmente vinculada a uma compra aprovada.
type StockEntryRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
	Quantity   string `json:"quantity" validate:"required,decimal"`
	CompraID   string `json:"compra_id"`
}

// SetStockRequest grava o saldo absoluto de um par (produto, local).
type SetStockRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
	Quantity   string `json:"quantity" validate:"required,decimal"`
}

// StockResponse saldo de um produto em um local.
type StockResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductCode  string    `json:"product_cod,omitempty"`
	ProductName  string    `json:"product_nome,omitempty"`
	Unit         string    `json:"und_medida,omitempty"`
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_nome,omitempty"`
	Quantity     string    `json:"quantity"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PDVItemResponse produto disponível no PDV com o preço do local.
type PDVItemResponse struct {
	StockID   string  `json:"stock_id"`
	ProductID string  `json:"product_id"`
	Code      string  `json:"cod"`
	Name      string  `json:"nome"`
	Unit      string  `json:"und_medida"`
	Quantity  string  `json:"quantity"`
	Price     *string `json:"preco"`
	SaleUnit  string  `json:"und_medida_venda,omitempty"`
}
