package dto

// PageRequest paginação para listagens.
type PageRequest struct {
	Limit  int    `query:"limit" validate:"min=0,max=100"`
	Offset int    `query:"offset" validate:"min=0"`
	Search string `query:"q"`
}

// DefaultPage aplica valores padrão se Limit/Offset forem zero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ActionResponse é o envelope de todas as operações: {success, data} ou {success:false, error, code}.
type ActionResponse struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// LineRequest é uma linha de orçamento ou de venda. Quantidades e preços chegam como
// strings decimais para não perder precisão.
type LineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  string `json:"quantity" validate:"required,decimal"`
	Unit      string `json:"und_medida" validate:"required,und_medida"`
	UnitPrice string `json:"preco_unitario" validate:"required,decimal"`
	Subtotal  string `json:"subtotal" validate:"required,decimal"`
}

// LineResponse é uma linha com os dados do produto.
type LineResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	ProductCode string `json:"product_cod"`
	ProductName string `json:"product_nome"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"und_medida"`
	UnitPrice   string `json:"preco_unitario"`
	Subtotal    string `json:"subtotal"`
}

// CodeResponse devolve id e código de um registro recém-criado.
type CodeResponse struct {
	ID     string `json:"id"`
	Codigo string `json:"codigo"`
}
