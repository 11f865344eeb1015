package dto

// GroupRequest entrada de grupo e subgrupo (GroupID só para subgrupo).
type GroupRequest struct {
	Code    string `json:"cod" validate:"required"`
	Name    string `json:"nome" validate:"required,min=3"`
	GroupID string `json:"group_id"`
}

// GroupResponse saída de grupo ou subgrupo.
type GroupResponse struct {
	ID      string `json:"id"`
	Code    string `json:"cod"`
	Name    string `json:"nome"`
	GroupID string `json:"group_id,omitempty"`
}

// ProductRequest entrada para criar ou editar produto.
type ProductRequest struct {
	Code       string `json:"cod" validate:"required"`
	GroupID    string `json:"grupo_id"`
	SubgroupID string `json:"subgrupo_id"`
	Name       string `json:"nome" validate:"required,min=3"`
	Unit       string `json:"und_medida" validate:"required,und_medida"`
	Reference1 string `json:"referencia_1"`
	Reference2 string `json:"referencia_2"`
}

// ProductResponse saída de produto; DisplayCode é "<grupo> - <subgrupo> - <cod>".
type ProductResponse struct {
	ID          string `json:"id"`
	Code        string `json:"cod"`
	DisplayCode string `json:"cod_exibicao"`
	GroupID     string `json:"grupo_id,omitempty"`
	SubgroupID  string `json:"subgrupo_id,omitempty"`
	Name        string `json:"nome"`
	Unit        string `json:"und_medida"`
	Reference1  string `json:"referencia_1,omitempty"`
	Reference2  string `json:"referencia_2,omitempty"`
}

// LocationRequest entrada de local.
type LocationRequest struct {
	Name     string `json:"nome" validate:"required,min=2"`
	Address  string `json:"endereco"`
	Number   string `json:"numero"`
	District string `json:"bairro"`
	City     string `json:"cidade"`
	ZipCode  string `json:"cep"`
}

// LocationResponse saída de local.
type LocationResponse struct {
	ID       string `json:"id"`
	Name     string `json:"nome"`
	Address  string `json:"endereco,omitempty"`
	Number   string `json:"numero,omitempty"`
	District string `json:"bairro,omitempty"`
	City     string `json:"cidade,omitempty"`
	ZipCode  string `json:"cep,omitempty"`
}

// PositionRequest entrada de cargo.
type PositionRequest struct {
	Name string `json:"nome" validate:"required,min=2"`
}

// PositionResponse saída de cargo.
type PositionResponse struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}

// PartyRequest entrada de cliente ou fornecedor.
type PartyRequest struct {
	Name     string `json:"nome" validate:"required,min=2"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"telefone"`
	TaxID    string `json:"cpf_cnpj"`
	Address  string `json:"endereco"`
	Number   string `json:"numero"`
	City     string `json:"cidade"`
	State    string `json:"estado" validate:"omitempty,len=2"`
	ZipCode  string `json:"cep"`
	IsActive *bool  `json:"is_active"`
}

// PartyResponse saída de cliente ou fornecedor.
type PartyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"nome"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"telefone,omitempty"`
	TaxID    string `json:"cpf_cnpj,omitempty"`
	Address  string `json:"endereco,omitempty"`
	Number   string `json:"numero,omitempty"`
	City     string `json:"cidade,omitempty"`
	State    string `json:"estado,omitempty"`
	ZipCode  string `json:"cep,omitempty"`
	IsActive bool   `json:"is_active"`
}
