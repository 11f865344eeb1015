package repository

import (
	"context"

	"github.com/jhoicas/erp-comercial/internal/domain/entity"
)

// UserRepository define a porta de persistência de usuários.
type UserRepository interface {
	// Create devolve domain.ErrEmailAlreadyExists se o email já existir.
	Create(ctx context.Context, u *entity.User) error
	// Update grava nome, email, papel, status e hash; ErrEmailAlreadyExists se o email colidir.
	Update(ctx context.Context, u *entity.User) error
	// SetPosition atribui o cargo ao usuário; positionID vazio remove a atribuição.
	// Cargo inexistente devolve domain.ErrNotFound.
	SetPosition(ctx context.Context, userID, positionID string) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}

// PositionRepository define a porta de persistência de cargos. Remover um cargo
// desfaz as atribuições aos usuários.
type PositionRepository interface {
	Create(ctx context.Context, p *entity.Position) error
	Update(ctx context.Context, p *entity.Position) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Position, error)
	List(ctx context.Context) ([]entity.Position, error)
}
