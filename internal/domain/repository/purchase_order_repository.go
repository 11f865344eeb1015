package repository

import (
	"context"

	"github.com/jhoicas/erp-comercial/internal/domain/entity"
)

// PurchaseOrderFilter filtra a listagem de compras.
type PurchaseOrderFilter struct {
	Status     string
	SupplierID string
	LocationID string
}

// PurchaseOrderRepository define a porta de persistência de compras.
type PurchaseOrderRepository interface {
	// Create devolve domain.ErrCodeConflict se o código já existir.
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetView(ctx context.Context, id string) (*entity.PurchaseOrderView, error)
	List(ctx context.Context, f PurchaseOrderFilter) ([]entity.PurchaseOrderView, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}
