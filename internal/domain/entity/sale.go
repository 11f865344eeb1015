package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleFinalized é o único status usado pelos fluxos atuais.
const SaleFinalized = "finalizada"

// Sale ("venda") é uma venda finalizada, vinda do PDV ou de um orçamento.
type Sale struct {
	ID         string
	Code       string
	ClientID   string // opcional no PDV
	LocationID string
	Total      decimal.Decimal
	Notes      string
	HasInvoice bool
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SaleLine pertence a exatamente uma Sale.
type SaleLine struct {
	ID     string
	SaleID string
	LineItem
	CreatedAt time.Time
}

// SaleView é a venda com nomes de cliente e local.
type SaleView struct {
	Sale
	ClientName   string
	LocationName string
}
