package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementação de PurchaseOrderRepository (tabela compras).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository constrói o adaptador de compras. Passar pool ou tx.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const compraColumns = `c.id, c.codigo, c.product_id, c.supplier_id, c.location_id, c.quantity,
	c.und_medida::text, c.tem_nota, COALESCE(c.nota_file_url, ''), c.status::text, c.created_at, c.updated_at`

func scanCompra(row pgx.Row, extra ...any) (*entity.PurchaseOrder, error) {
	var p entity.PurchaseOrder
	dest := []any{
		&p.ID, &p.Code, &p.ProductID, &p.SupplierID, &p.LocationID, &p.Quantity,
		&p.Unit, &p.HasInvoice, &p.InvoiceFileURL, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create insere a compra. Código repetido devolve domain.ErrCodeConflict.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO compras (id, codigo, product_id, supplier_id, location_id, quantity, und_medida,
			tem_nota, nota_file_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.Code, po.ProductID, po.SupplierID, po.LocationID, po.Quantity, po.Unit,
		po.HasInvoice, nullIfEmpty(po.InvoiceFileURL), po.Status, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		return mapCodeInsertError("insert compra", "compras_codigo_key", err)
	}
	return nil
}

// Update grava os dados editáveis da compra.
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		UPDATE compras SET product_id = $2, supplier_id = $3, location_id = $4, quantity = $5,
			und_medida = $6, tem_nota = $7, nota_file_url = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		po.ID, po.ProductID, po.SupplierID, po.LocationID, po.Quantity, po.Unit,
		po.HasInvoice, nullIfEmpty(po.InvoiceFileURL), po.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update compra", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus grava apenas status e updated_at.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error {
	tag, err := r.q.Exec(ctx, `UPDATE compras SET status = $2, updated_at = $3 WHERE id = $1`,
		po.ID, po.Status, po.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update compra status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove a compra.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM compras WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtém a compra; nil se não existir.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+compraColumns+` FROM compras c WHERE c.id = $1`, id)
}

// GetForUpdate obtém a compra bloqueando a linha.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+compraColumns+` FROM compras c WHERE c.id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) getOne(ctx context.Context, query string, id string) (*entity.PurchaseOrder, error) {
	po, err := scanCompra(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra: %w", err)
	}
	return po, nil
}

const compraViewSelect = `
	SELECT ` + compraColumns + `,
		p.cod, p.nome, COALESCE(g.cod, ''), COALESCE(sg.cod, ''), f.nome, l.nome
	FROM compras c
	JOIN products p ON p.id = c.product_id
	LEFT JOIN groups g ON g.id = p.grupo_id
	LEFT JOIN subgroups sg ON sg.id = p.subgrupo_id
	JOIN suppliers f ON f.id = c.supplier_id
	JOIN locations l ON l.id = c.location_id`

func scanCompraView(row pgx.Row) (*entity.PurchaseOrderView, error) {
	var v entity.PurchaseOrderView
	po, err := scanCompra(row, &v.ProductCode, &v.ProductName, &v.GroupCode, &v.SubgroupCode, &v.SupplierName, &v.LocationName)
	if err != nil {
		return nil, err
	}
	v.PurchaseOrder = *po
	return &v, nil
}

// GetView obtém a compra com nomes resolvidos; nil se não existir.
func (r *PurchaseOrderRepo) GetView(ctx context.Context, id string) (*entity.PurchaseOrderView, error) {
	v, err := scanCompraView(r.q.QueryRow(ctx, compraViewSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra view: %w", err)
	}
	return v, nil
}

// List lista compras filtradas, mais recentes primeiro.
func (r *PurchaseOrderRepo) List(ctx context.Context, f repository.PurchaseOrderFilter) ([]entity.PurchaseOrderView, error) {
	var conds []string
	var args []any
	add := func(cond string, v string) {
		if v == "" {
			return
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	add("c.status::text = $%d", f.Status)
	add("c.supplier_id = $%d", f.SupplierID)
	add("c.location_id = $%d", f.LocationID)

	query := compraViewSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY c.created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	defer rows.Close()

	var list []entity.PurchaseOrderView
	for rows.Next() {
		v, err := scanCompraView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan compra: %w", err)
		}
		list = append(list, *v)
	}
	return list, rows.Err()
}

// CodeExists informa se o código já está em uso na tabela compras.
func (r *PurchaseOrderRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM compras WHERE codigo = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check codigo compra: %w", err)
	}
	return exists, nil
}
