package dto

import "time"

// CheckoutRequest finalização de venda no PDV.
type CheckoutRequest struct {
	LocationID string        `json:"location_id" validate:"required"`
	ClientID   string        `json:"client_id"`
	HasInvoice bool          `json:"tem_nota"`
	Notes      string        `json:"observacoes"`
	Items      []LineRequest `json:"items" validate:"required,min=1,dive"`
}

// VendaListRequest filtros da listagem de vendas.
type VendaListRequest struct {
	LocationID string `query:"location_id"`
	ClientID   string `query:"client_id"`
}

// VendaResponse saída de uma venda.
type VendaResponse struct {
	ID           string         `json:"id"`
	Codigo       string         `json:"codigo"`
	ClientID     string         `json:"client_id,omitempty"`
	ClientName   string         `json:"client_nome,omitempty"`
	LocationID   string         `json:"location_id"`
	LocationName string         `json:"location_nome,omitempty"`
	Total        string         `json:"total"`
	Notes        string         `json:"observacoes,omitempty"`
	HasInvoice   bool           `json:"tem_nota"`
	Status       string         `json:"status"`
	Items        []LineResponse `json:"items,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
