package entity

import (
	"fmt"
	"time"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/shopspring/decimal"
)

// Status de uma compra.
const (
	PurchasePending   = "pendente"
	PurchaseApproved  = "aprovado"
	PurchaseRejected  = "reprovado"
	PurchaseDelivered = "entregue"
)

// PurchaseOrder ("compra") é o pedido de um produto a um fornecedor, entregue em um local.
type PurchaseOrder struct {
	ID             string
	Code           string
	ProductID      string
	SupplierID     string
	LocationID     string
	Quantity       decimal.Decimal
	Unit           string
	HasInvoice     bool
	InvoiceFileURL string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Approve move pendente -> aprovado.
func (p *PurchaseOrder) Approve(now time.Time) error {
	if p.Status != PurchasePending {
		return fmt.Errorf("%w: apenas compras pendentes podem ser aprovadas", domain.ErrInvalidState)
	}
	p.Status = PurchaseApproved
	p.UpdatedAt = now
	return nil
}

// Reject move pendente -> reprovado.
func (p *PurchaseOrder) Reject(now time.Time) error {
	if p.Status != PurchasePending {
		return fmt.Errorf("%w: apenas compras pendentes podem ser reprovadas", domain.ErrInvalidState)
	}
	p.Status = PurchaseRejected
	p.UpdatedAt = now
	return nil
}

// MarkDelivered move aprovado -> entregue (entrada de estoque vinculada).
func (p *PurchaseOrder) MarkDelivered(now time.Time) error {
	if p.Status != PurchaseApproved {
		return fmt.Errorf("%w: apenas compras aprovadas podem receber entrada de estoque", domain.ErrInvalidState)
	}
	p.Status = PurchaseDelivered
	p.UpdatedAt = now
	return nil
}

// CanEdit indica se os dados da compra ainda podem ser alterados.
func (p *PurchaseOrder) CanEdit() bool { return p.Status == PurchasePending }

// CanDelete permite excluir apenas compras que não movimentaram estoque.
func (p *PurchaseOrder) CanDelete() bool {
	return p.Status == PurchasePending || p.Status == PurchaseRejected
}

// PurchaseOrderView é a compra com nomes de produto, fornecedor e local.
type PurchaseOrderView struct {
	PurchaseOrder
	ProductCode  string
	ProductName  string
	GroupCode    string
	SubgroupCode string
	SupplierName string
	LocationName string
}
