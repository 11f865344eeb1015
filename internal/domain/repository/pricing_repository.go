package repository

import (
	"context"

	"github.com/jhoicas/erp-comercial/internal/domain/entity"
)

// PricingFilter filtra a listagem de preços.
type PricingFilter struct {
	ProductID  string
	LocationID string
}

// PricingRepository define a porta de persistência de preços por local.
type PricingRepository interface {
	// Create devolve domain.ErrDuplicate se o par (produto, local) já tiver preço.
	Create(ctx context.Context, p *entity.Pricing) error
	Update(ctx context.Context, p *entity.Pricing) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Pricing, error)
	GetByProductLocation(ctx context.Context, productID, locationID string) (*entity.Pricing, error)
	List(ctx context.Context, f PricingFilter) ([]entity.PricingView, error)
}
