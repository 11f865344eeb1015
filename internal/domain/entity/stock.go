package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock é o saldo corrente de um produto em um local. Existe no máximo uma
// linha por par (ProductID, LocationID) e a quantidade nunca é negativa.
type Stock struct {
	ID         string
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StockView é a linha de estoque com os dados de produto e local já resolvidos.
type StockView struct {
	Stock
	ProductCode  string
	ProductName  string
	ProductUnit  string
	GroupCode    string
	SubgroupCode string
	LocationName string
}

// PDVItem é um produto com saldo positivo em um local, com o preço configurado
// naquele local (Price nil quando não há precificação).
type PDVItem struct {
	StockID      string
	ProductID    string
	Code         string
	Name         string
	Unit         string
	GroupCode    string
	SubgroupCode string
	Quantity     decimal.Decimal
	Price        *decimal.Decimal
	SaleUnit     string
}
