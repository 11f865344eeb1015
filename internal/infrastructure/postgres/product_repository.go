package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementação de ProductRepository (tabela products).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de produtos. Passar pool ou tx.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.cod, COALESCE(p.grupo_id, ''), COALESCE(p.subgrupo_id, ''), p.nome, p.und_medida::text,
		COALESCE(p.referencia_1, ''), COALESCE(p.referencia_2, ''), COALESCE(g.cod, ''), COALESCE(sg.cod, ''),
		p.created_at, p.updated_at
	FROM products p
	LEFT JOIN groups g ON g.id = p.grupo_id
	LEFT JOIN subgroups sg ON sg.id = p.subgrupo_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Code, &p.GroupID, &p.SubgroupID, &p.Name, &p.Unit,
		&p.Reference1, &p.Reference2, &p.GroupCode, &p.SubgroupCode, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste um novo produto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, cod, grupo_id, subgrupo_id, nome, und_medida, referencia_1, referencia_2, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, nullIfEmpty(p.GroupID), nullIfEmpty(p.SubgroupID), p.Name, p.Unit,
		nullIfEmpty(p.Reference1), nullIfEmpty(p.Reference2), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: grupo ou subgrupo inexistente", domain.ErrNotFound)
		}
		return mapWriteError("insert product", err)
	}
	return nil
}

// Update atualiza os dados do produto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return execAffecting(ctx, r.q, "update product", `
		UPDATE products SET cod = $2, grupo_id = $3, subgrupo_id = $4, nome = $5, und_medida = $6,
			referencia_1 = $7, referencia_2 = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, p.Code, nullIfEmpty(p.GroupID), nullIfEmpty(p.SubgroupID), p.Name, p.Unit,
		nullIfEmpty(p.Reference1), nullIfEmpty(p.Reference2), p.UpdatedAt)
}

// Delete remove o produto; falha com ErrInvalidState se houver compras ou vendas.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.q, "delete product", `DELETE FROM products WHERE id = $1`, id)
}

// GetByID obtém o produto com os códigos de grupo e subgrupo; nil se não existir.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List pagina produtos; search filtra por nome ou código (ILIKE).
func (r *ProductRepo) List(ctx context.Context, search string, limit, offset int) ([]entity.Product, error) {
	query := productSelect
	args := []any{limit, offset}
	if search != "" {
		query += ` WHERE p.nome ILIKE $3 OR p.cod ILIKE $3`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY p.nome LIMIT $1 OFFSET $2`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}
