package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementação de StockRepository sobre PostgreSQL (pool ou tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository constrói o adaptador de estoque. Passar pool ou tx.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `s.id, s.product_id, s.location_id, s.quantity, s.created_at, s.updated_at`

const stockViewSelect = `
	SELECT ` + stockColumns + `,
		p.cod, p.nome, p.und_medida::text, COALESCE(g.cod, ''), COALESCE(sg.cod, ''), l.nome
	FROM stock s
	JOIN products p ON p.id = s.product_id
	JOIN locations l ON l.id = s.location_id
	LEFT JOIN groups g ON g.id = p.grupo_id
	LEFT JOIN subgroups sg ON sg.id = p.subgrupo_id`

// Adjust soma delta ao saldo numa única instrução. Delta positivo faz upsert;
// delta negativo ou zero só atualiza uma linha existente.
func (r *StockRepo) Adjust(ctx context.Context, productID, locationID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var qty decimal.Decimal
	if delta.IsPositive() {
		query := `
			INSERT INTO stock (id, product_id, location_id, quantity, created_at, updated_at)
			VALUES ($1, $2, $3, $4, now(), now())
			ON CONFLICT (product_id, location_id)
			DO UPDATE SET quantity = GREATEST(stock.quantity + EXCLUDED.quantity, 0), updated_at = now()
			RETURNING quantity`
		err := r.q.QueryRow(ctx, query, uuid.NewString(), productID, locationID, delta).Scan(&qty)
		if err != nil {
			if isForeignKeyViolation(err) {
				return decimal.Zero, fmt.Errorf("%w: produto ou local inexistente", domain.ErrNotFound)
			}
			return decimal.Zero, fmt.Errorf("adjust stock: %w", err)
		}
		return qty, nil
	}

	query := `
		UPDATE stock SET quantity = GREATEST(quantity + $3, 0), updated_at = now()
		WHERE product_id = $1 AND location_id = $2
		RETURNING quantity`
	err := r.q.QueryRow(ctx, query, productID, locationID, delta).Scan(&qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("adjust stock: %w", err)
	}
	return qty, nil
}

// Set grava o saldo absoluto do par (produto, local).
func (r *StockRepo) Set(ctx context.Context, productID, locationID string, quantity decimal.Decimal) (*entity.Stock, error) {
	query := `
		INSERT INTO stock (id, product_id, location_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()
		RETURNING id, product_id, location_id, quantity, created_at, updated_at`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, uuid.NewString(), productID, locationID, quantity).Scan(
		&s.ID, &s.ProductID, &s.LocationID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: produto ou local inexistente", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("set stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtém o saldo e bloqueia a linha (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, locationID string) (*entity.Stock, error) {
	return r.getOne(ctx, `SELECT `+stockColumns+` FROM stock s
		WHERE s.product_id = $1 AND s.location_id = $2 FOR UPDATE`, productID, locationID)
}

// Get obtém o saldo do par; nil se não existir linha.
func (r *StockRepo) Get(ctx context.Context, productID, locationID string) (*entity.Stock, error) {
	return r.getOne(ctx, `SELECT `+stockColumns+` FROM stock s
		WHERE s.product_id = $1 AND s.location_id = $2`, productID, locationID)
}

// GetByID obtém uma linha de estoque pelo ID.
func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.Stock, error) {
	return r.getOne(ctx, `SELECT `+stockColumns+` FROM stock s WHERE s.id = $1`, id)
}

func (r *StockRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.ProductID, &s.LocationID, &s.Quantity, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Delete remove a linha de estoque.
func (r *StockRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByLocation lista os saldos de um local, ordenados pelo nome do produto.
func (r *StockRepo) ListByLocation(ctx context.Context, locationID string) ([]entity.StockView, error) {
	return r.listViews(ctx, stockViewSelect+` WHERE s.location_id = $1 ORDER BY p.nome`, locationID)
}

// ListByProduct lista os saldos de um produto em todos os locais.
func (r *StockRepo) ListByProduct(ctx context.Context, productID string) ([]entity.StockView, error) {
	return r.listViews(ctx, stockViewSelect+` WHERE s.product_id = $1 ORDER BY l.nome`, productID)
}

func (r *StockRepo) listViews(ctx context.Context, query string, args ...any) ([]entity.StockView, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []entity.StockView
	for rows.Next() {
		var v entity.StockView
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.LocationID, &v.Quantity, &v.CreatedAt, &v.UpdatedAt,
			&v.ProductCode, &v.ProductName, &v.ProductUnit, &v.GroupCode, &v.SubgroupCode, &v.LocationName,
		); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// ListForPDV lista produtos com saldo positivo no local, com o preço daquele local.
func (r *StockRepo) ListForPDV(ctx context.Context, locationID string) ([]entity.PDVItem, error) {
	query := `
		SELECT s.id, p.id, p.cod, p.nome, p.und_medida::text, COALESCE(g.cod, ''), COALESCE(sg.cod, ''),
			s.quantity, pr.preco, COALESCE(pr.und_medida_venda::text, '')
		FROM stock s
		JOIN products p ON p.id = s.product_id
		LEFT JOIN groups g ON g.id = p.grupo_id
		LEFT JOIN subgroups sg ON sg.id = p.subgrupo_id
		LEFT JOIN pricing pr ON pr.product_id = s.product_id AND pr.location_id = s.location_id
		WHERE s.location_id = $1 AND s.quantity > 0
		ORDER BY p.nome`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list pdv stock: %w", err)
	}
	defer rows.Close()

	var list []entity.PDVItem
	for rows.Next() {
		var it entity.PDVItem
		var price decimal.NullDecimal
		if err := rows.Scan(
			&it.StockID, &it.ProductID, &it.Code, &it.Name, &it.Unit, &it.GroupCode, &it.SubgroupCode,
			&it.Quantity, &price, &it.SaleUnit,
		); err != nil {
			return nil, fmt.Errorf("scan pdv stock: %w", err)
		}
		if price.Valid {
			p := price.Decimal
			it.Price = &p
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
