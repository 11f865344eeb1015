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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementação de SaleRepository (tabelas vendas e venda_items).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador de vendas. Passar pool ou tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create insere a venda e seus itens. Deve rodar dentro de uma transação.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale, lines []entity.SaleLine) error {
	query := `
		INSERT INTO vendas (id, codigo, client_id, location_id, total, observacoes, tem_nota, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Code, nullIfEmpty(s.ClientID), s.LocationID, s.Total, nullIfEmpty(s.Notes),
		s.HasInvoice, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return mapCodeInsertError("insert venda", "vendas_codigo_key", err)
	}

	itemQuery := `
		INSERT INTO venda_items (id, venda_id, product_id, quantity, und_medida, preco_unitario, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, l := range lines {
		if _, err := r.q.Exec(ctx, itemQuery, l.ID, s.ID, l.ProductID, l.Quantity, l.Unit, l.UnitPrice, l.Subtotal, l.CreatedAt); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: produto %s", domain.ErrNotFound, l.ProductID)
			}
			return fmt.Errorf("insert venda item: %w", err)
		}
	}
	return nil
}

const vendaViewSelect = `
	SELECT v.id, v.codigo, COALESCE(v.client_id, ''), v.location_id, v.total, COALESCE(v.observacoes, ''),
		v.tem_nota, v.status, v.created_at, v.updated_at, COALESCE(c.nome, ''), l.nome
	FROM vendas v
	LEFT JOIN clients c ON c.id = v.client_id
	JOIN locations l ON l.id = v.location_id`

func scanSaleView(row pgx.Row) (*entity.SaleView, error) {
	var v entity.SaleView
	err := row.Scan(
		&v.ID, &v.Code, &v.ClientID, &v.LocationID, &v.Total, &v.Notes,
		&v.HasInvoice, &v.Status, &v.CreatedAt, &v.UpdatedAt, &v.ClientName, &v.LocationName,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetView obtém a venda com cliente e local; nil se não existir.
func (r *SaleRepo) GetView(ctx context.Context, id string) (*entity.SaleView, error) {
	v, err := scanSaleView(r.q.QueryRow(ctx, vendaViewSelect+` WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venda: %w", err)
	}
	return v, nil
}

// LineViews devolve os itens da venda com dados do produto.
func (r *SaleRepo) LineViews(ctx context.Context, saleID string) ([]entity.LineView, error) {
	return listLineViews(ctx, r.q, "venda_items", "venda_id", saleID)
}

// List lista vendas filtradas, mais recentes primeiro.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]entity.SaleView, error) {
	var conds []string
	var args []any
	if f.LocationID != "" {
		args = append(args, f.LocationID)
		conds = append(conds, fmt.Sprintf("v.location_id = $%d", len(args)))
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		conds = append(conds, fmt.Sprintf("v.client_id = $%d", len(args)))
	}
	query := vendaViewSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY v.created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vendas: %w", err)
	}
	defer rows.Close()

	var list []entity.SaleView
	for rows.Next() {
		v, err := scanSaleView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venda: %w", err)
		}
		list = append(list, *v)
	}
	return list, rows.Err()
}

// CodeExists informa se o código já está em uso na tabela vendas.
func (r *SaleRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM vendas WHERE codigo = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check codigo venda: %w", err)
	}
	return exists, nil
}
