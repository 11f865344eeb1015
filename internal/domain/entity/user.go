package entity

import "time"

// Papéis válidos para User.
const (
	RoleAdmin      = "admin"
	RoleStockClerk = "estoquista"
	RoleSeller     = "vendedor"
)

// User representa um usuário do sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // hash bcrypt, nunca texto plano
	Role         string
	IsActive     bool
	PositionID   string // cargo atribuído; vazio quando não há
	PositionName string // só leitura
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword indica se o usuário já definiu senha. Usuários convidados
// ficam sem senha até aceitar o convite.
func (u *User) HasPassword() bool { return u.PasswordHash != "" }

// Position é um cargo (função) atribuível a usuários, como "Vendedor externo".
type Position struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
