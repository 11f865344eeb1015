package repository

import (
	"context"

	"github.com/jhoicas/erp-comercial/internal/domain/entity"
)

// GroupRepository define a porta de persistência de grupos.
type GroupRepository interface {
	Create(ctx context.Context, g *entity.Group) error
	Update(ctx context.Context, g *entity.Group) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Group, error)
	List(ctx context.Context) ([]entity.Group, error)
}

// SubgroupRepository define a porta de persistência de subgrupos.
type SubgroupRepository interface {
	Create(ctx context.Context, s *entity.Subgroup) error
	Update(ctx context.Context, s *entity.Subgroup) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Subgroup, error)
	// List devolve todos os subgrupos, ou só os do grupo quando groupID != "".
	List(ctx context.Context, groupID string) ([]entity.Subgroup, error)
}

// ProductRepository define a porta de persistência de produtos.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, search string, limit, offset int) ([]entity.Product, error)
}

// LocationRepository define a porta de persistência de locais.
type LocationRepository interface {
	Create(ctx context.Context, l *entity.Location) error
	Update(ctx context.Context, l *entity.Location) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	List(ctx context.Context) ([]entity.Location, error)
}

// PartyRepository serve clientes e fornecedores (mesmo formato, tabelas distintas).
type PartyRepository interface {
	Create(ctx context.Context, p *entity.Party) error
	Update(ctx context.Context, p *entity.Party) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Party, error)
	List(ctx context.Context, onlyActive bool) ([]entity.Party, error)
}
