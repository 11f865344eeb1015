package repository

import (
	"context"

	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository define a porta de persistência do saldo por (produto, local).
type StockRepository interface {
	// Adjust soma delta ao saldo de forma atômica, limitando o resultado a zero.
	// Com delta positivo cria a linha se ela não existir; com delta negativo
	// sobre linha inexistente não cria nada. Devolve o saldo resultante.
	Adjust(ctx context.Context, productID, locationID string, delta decimal.Decimal) (decimal.Decimal, error)
	// Set grava o saldo absoluto (insere ou substitui).
	Set(ctx context.Context, productID, locationID string, quantity decimal.Decimal) (*entity.Stock, error)
	// GetForUpdate bloqueia a linha (SELECT FOR UPDATE). nil se não existir.
	GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error)
	Get(ctx context.Context, productID, locationID string) (*entity.Stock, error)
	GetByID(ctx context.Context, id string) (*entity.Stock, error)
	Delete(ctx context.Context, id string) error
	ListByLocation(ctx context.Context, locationID string) ([]entity.StockView, error)
	ListByProduct(ctx context.Context, productID string) ([]entity.StockView, error)
	ListForPDV(ctx context.Context, locationID string) ([]entity.PDVItem, error)
}
