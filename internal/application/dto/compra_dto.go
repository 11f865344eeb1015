package dto

import "time"

// CompraRequest entrada para criar ou editar uma compra.
type CompraRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	SupplierID string `json:"supplier_id" validate:"required"`
	LocationID string `json:"location_id" validate:"required"`
	Quantity   string `json:"quantity" validate:"required,decimal"`
	Unit       string `json:"und_medida" validate:"required,und_medida"`
	HasInvoice bool   `json:"tem_nota"`
}

// CompraListRequest filtros da listagem de compras.
type CompraListRequest struct {
	Status     string `query:"status" validate:"omitempty,oneof=pendente aprovado reprovado entregue"`
	SupplierID string `query:"supplier_id"`
	LocationID string `query:"location_id"`
}

// UploadNotaRequest envio de nota em base64 (alternativa ao multipart).
type UploadNotaRequest struct {
	FileName string `json:"file_name" validate:"required"`
	Content  string `json:"content" validate:"required"` // base64, aceita prefixo data:...;base64,
}

// CompraResponse saída de uma compra.
type CompraResponse struct {
	ID           string    `json:"id"`
	Codigo       string    `json:"codigo"`
	ProductID    string    `json:"product_id"`
	ProductCode  string    `json:"product_cod,omitempty"`
	ProductName  string    `json:"product_nome,omitempty"`
	SupplierID   string    `json:"supplier_id"`
	SupplierName string    `json:"supplier_nome,omitempty"`
	LocationID   string    `json:"location_id"`
	LocationName string    `json:"location_nome,omitempty"`
	Quantity     string    `json:"quantity"`
	Unit         string    `json:"und_medida"`
	HasInvoice   bool      `json:"tem_nota"`
	NotaFileURL  string    `json:"nota_file_url,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
