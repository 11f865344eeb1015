package entity

import "time"

// Group é a etiqueta de primeiro nível do catálogo de produtos.
type Group struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Subgroup pertence a um Group.
type Subgroup struct {
	ID        string
	Code      string
	Name      string
	GroupID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product representa um item do catálogo. O saldo fica em Stock, por local.
type Product struct {
	ID           string
	Code         string
	GroupID      string
	SubgroupID   string
	Name         string
	Unit         string // mts, br, un
	Reference1   string
	Reference2   string
	GroupCode    string // preenchido nas leituras com join
	SubgroupCode string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayCode monta "<grupo> - <subgrupo> - <cod>" quando os dois prefixos existem.
func DisplayCode(groupCode, subgroupCode, code string) string {
	if groupCode != "" && subgroupCode != "" {
		return groupCode + " - " + subgroupCode + " - " + code
	}
	return code
}

// Location é um local que mantém estoque (loja, depósito).
type Location struct {
	ID        string
	Name      string
	Address   string
	Number    string
	District  string
	City      string
	ZipCode   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Party é o cadastro comum a clientes e fornecedores.
type Party struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	TaxID     string // CPF ou CNPJ
	Address   string
	Number    string
	City      string
	State     string
	ZipCode   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
