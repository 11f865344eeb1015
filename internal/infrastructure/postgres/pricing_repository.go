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

var _ repository.PricingRepository = (*PricingRepo)(nil)

// PricingRepo implementação de PricingRepository (tabela pricing).
type PricingRepo struct {
	q Querier
}

// NewPricingRepository constrói o adaptador de precificação. Passar pool ou tx.
func NewPricingRepository(q Querier) *PricingRepo {
	return &PricingRepo{q: q}
}

const pricingColumns = `pr.id, pr.product_id, pr.location_id, pr.preco, pr.und_medida_venda::text, pr.created_at, pr.updated_at`

// Create insere o preço; par (produto, local) repetido devolve domain.ErrDuplicate.
func (r *PricingRepo) Create(ctx context.Context, p *entity.Pricing) error {
	query := `
		INSERT INTO pricing (id, product_id, location_id, preco, und_medida_venda, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.ProductID, p.LocationID, p.Price, p.SaleUnit, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: já existe uma precificação para este produto neste local", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: produto ou local inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert pricing: %w", err)
	}
	return nil
}

// Update grava preço, unidade e par (produto, local).
func (r *PricingRepo) Update(ctx context.Context, p *entity.Pricing) error {
	query := `
		UPDATE pricing SET product_id = $2, location_id = $3, preco = $4, und_medida_venda = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.ProductID, p.LocationID, p.Price, p.SaleUnit, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: já existe uma precificação para este produto neste local", domain.ErrDuplicate)
		}
		return mapWriteError("update pricing", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PricingRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM pricing WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pricing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PricingRepo) GetByID(ctx context.Context, id string) (*entity.Pricing, error) {
	return r.getOne(ctx, `SELECT `+pricingColumns+` FROM pricing pr WHERE pr.id = $1`, id)
}

// GetByProductLocation obtém o preço do par; nil se não houver.
func (r *PricingRepo) GetByProductLocation(ctx context.Context, productID, locationID string) (*entity.Pricing, error) {
	return r.getOne(ctx, `SELECT `+pricingColumns+` FROM pricing pr
		WHERE pr.product_id = $1 AND pr.location_id = $2`, productID, locationID)
}

func (r *PricingRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Pricing, error) {
	var p entity.Pricing
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.ProductID, &p.LocationID, &p.Price, &p.SaleUnit, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pricing: %w", err)
	}
	return &p, nil
}

// List lista preços com produto e local, filtrando por qualquer um dos dois.
func (r *PricingRepo) List(ctx context.Context, f repository.PricingFilter) ([]entity.PricingView, error) {
	query := `
		SELECT ` + pricingColumns + `, p.cod, p.nome, COALESCE(g.cod, ''), COALESCE(sg.cod, ''), l.nome
		FROM pricing pr
		JOIN products p ON p.id = pr.product_id
		LEFT JOIN groups g ON g.id = p.grupo_id
		LEFT JOIN subgroups sg ON sg.id = p.subgrupo_id
		JOIN locations l ON l.id = pr.location_id`
	var conds []string
	var args []any
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		conds = append(conds, fmt.Sprintf("pr.product_id = $%d", len(args)))
	}
	if f.LocationID != "" {
		args = append(args, f.LocationID)
		conds = append(conds, fmt.Sprintf("pr.location_id = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.nome, l.nome"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pricing: %w", err)
	}
	defer rows.Close()

	var list []entity.PricingView
	for rows.Next() {
		var v entity.PricingView
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.LocationID, &v.Price, &v.SaleUnit, &v.CreatedAt, &v.UpdatedAt,
			&v.ProductCode, &v.ProductName, &v.GroupCode, &v.SubgroupCode, &v.LocationName,
		); err != nil {
			return nil, fmt.Errorf("scan pricing: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
