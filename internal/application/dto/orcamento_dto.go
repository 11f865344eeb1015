package dto

import "time"

// OrcamentoRequest entrada para criar ou editar um orçamento.
type OrcamentoRequest struct {
	ClientID   string        `json:"client_id" validate:"required"`
	LocationID string        `json:"location_id" validate:"required"`
	ValidUntil string        `json:"validade" validate:"required,date"`
	Notes      string        `json:"observacoes"`
	HasInvoice bool          `json:"tem_nota"`
	Items      []LineRequest `json:"items" validate:"required,min=1,dive"`
}

// OrcamentoListRequest filtros da listagem; status aceita "vencido" (derivado).
type OrcamentoListRequest struct {
	Status     string `query:"status" validate:"omitempty,oneof=pendente aprovado recusado convertido vencido"`
	ClientID   string `query:"client_id"`
	LocationID string `query:"location_id"`
}

// OrcamentoResponse saída de um orçamento; Status já considera a validade.
type OrcamentoResponse struct {
	ID           string         `json:"id"`
	Codigo       string         `json:"codigo"`
	ClientID     string         `json:"client_id"`
	ClientName   string         `json:"client_nome,omitempty"`
	LocationID   string         `json:"location_id"`
	LocationName string         `json:"location_nome,omitempty"`
	Total        string         `json:"total"`
	Notes        string         `json:"observacoes,omitempty"`
	ValidUntil   string         `json:"validade"`
	HasInvoice   bool           `json:"tem_nota"`
	Status       string         `json:"status"`
	VendaID      string         `json:"venda_id,omitempty"`
	Items        []LineResponse `json:"items,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// SendOrcamentoRequest destinatário opcional; padrão é o e-mail do cliente.
type SendOrcamentoRequest struct {
	To string `json:"to" validate:"omitempty,email"`
}
