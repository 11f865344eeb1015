package repository

import (
	"context"

	"github.com/jhoicas/erp-comercial/internal/domain/entity"
)

// SaleFilter filtra a listagem de vendas.
type SaleFilter struct {
	LocationID string
	ClientID   string
}

// SaleRepository define a porta de persistência de vendas.
type SaleRepository interface {
	// Create grava cabeçalho e itens; domain.ErrCodeConflict se o código já existir.
	Create(ctx context.Context, s *entity.Sale, lines []entity.SaleLine) error
	GetView(ctx context.Context, id string) (*entity.SaleView, error)
	LineViews(ctx context.Context, saleID string) ([]entity.LineView, error)
	List(ctx context.Context, f SaleFilter) ([]entity.SaleView, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}
