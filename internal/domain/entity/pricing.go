package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pricing é o preço de venda de um produto em um local (único por par).
type Pricing struct {
	ID         string
	ProductID  string
	LocationID string
	Price      decimal.Decimal
	SaleUnit   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PricingView inclui produto e local resolvidos.
type PricingView struct {
	Pricing
	ProductCode  string
	ProductName  string
	GroupCode    string
	SubgroupCode string
	LocationName string
}
