package repository

import (
	"context"

	"github.com/jhoicas/erp-comercial/internal/domain/entity"
)

// QuoteFilter filtra a listagem de orçamentos. Status "vencido" é resolvido
// na aplicação, a partir dos pendentes.
type QuoteFilter struct {
	Status     string
	ClientID   string
	LocationID string
}

// QuoteRepository define a porta de persistência de orçamentos e seus itens.
type QuoteRepository interface {
	Create(ctx context.Context, q *entity.Quote) error
	Update(ctx context.Context, q *entity.Quote) error
	UpdateStatus(ctx context.Context, q *entity.Quote) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Quote, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Quote, error)
	GetView(ctx context.Context, id string) (*entity.QuoteView, error)
	List(ctx context.Context, f QuoteFilter) ([]entity.QuoteView, error)
	Lines(ctx context.Context, quoteID string) ([]entity.QuoteLine, error)
	LineViews(ctx context.Context, quoteID string) ([]entity.LineView, error)
	// ReplaceLines apaga os itens atuais e insere os novos.
	ReplaceLines(ctx context.Context, quoteID string, lines []entity.QuoteLine) error
	CodeExists(ctx context.Context, code string) (bool, error)
}
