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

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementação de QuoteRepository (tabelas orcamentos e orcamento_items).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository constrói o adaptador de orçamentos. Passar pool ou tx.
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const orcamentoColumns = `o.id, o.codigo, o.client_id, o.location_id, o.total, COALESCE(o.observacoes, ''),
	o.validade, o.tem_nota, o.status::text, COALESCE(o.venda_id, ''), o.created_at, o.updated_at`

func scanQuote(row pgx.Row, extra ...any) (*entity.Quote, error) {
	var q entity.Quote
	dest := []any{
		&q.ID, &q.Code, &q.ClientID, &q.LocationID, &q.Total, &q.Notes,
		&q.ValidUntil, &q.HasInvoice, &q.Status, &q.SaleID, &q.CreatedAt, &q.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &q, nil
}

// Create insere o cabeçalho do orçamento. Código repetido devolve domain.ErrCodeConflict.
func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	query := `
		INSERT INTO orcamentos (id, codigo, client_id, location_id, total, observacoes, validade,
			tem_nota, status, venda_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.Code, q.ClientID, q.LocationID, q.Total, nullIfEmpty(q.Notes), q.ValidUntil,
		q.HasInvoice, q.Status, nullIfEmpty(q.SaleID), q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return mapCodeInsertError("insert orcamento", "orcamentos_codigo_key", err)
	}
	return nil
}

// Update grava cabeçalho e total.
func (r *QuoteRepo) Update(ctx context.Context, q *entity.Quote) error {
	query := `
		UPDATE orcamentos SET client_id = $2, location_id = $3, total = $4, observacoes = $5,
			validade = $6, tem_nota = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		q.ID, q.ClientID, q.LocationID, q.Total, nullIfEmpty(q.Notes), q.ValidUntil, q.HasInvoice, q.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update orcamento", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus grava status, venda_id e updated_at numa única instrução.
func (r *QuoteRepo) UpdateStatus(ctx context.Context, q *entity.Quote) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE orcamentos SET status = $2, venda_id = $3, updated_at = $4 WHERE id = $1`,
		q.ID, q.Status, nullIfEmpty(q.SaleID), q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update orcamento status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove o orçamento; os itens caem em cascata.
func (r *QuoteRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM orcamentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete orcamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	return r.getOne(ctx, `SELECT `+orcamentoColumns+` FROM orcamentos o WHERE o.id = $1`, id)
}

// GetForUpdate obtém o orçamento bloqueando a linha.
func (r *QuoteRepo) GetForUpdate(ctx context.Context, id string) (*entity.Quote, error) {
	return r.getOne(ctx, `SELECT `+orcamentoColumns+` FROM orcamentos o WHERE o.id = $1 FOR UPDATE`, id)
}

func (r *QuoteRepo) getOne(ctx context.Context, query, id string) (*entity.Quote, error) {
	q, err := scanQuote(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orcamento: %w", err)
	}
	return q, nil
}

const orcamentoViewSelect = `
	SELECT ` + orcamentoColumns + `, c.nome, COALESCE(c.email, ''), l.nome
	FROM orcamentos o
	JOIN clients c ON c.id = o.client_id
	JOIN locations l ON l.id = o.location_id`

func scanQuoteView(row pgx.Row) (*entity.QuoteView, error) {
	var v entity.QuoteView
	q, err := scanQuote(row, &v.ClientName, &v.ClientEmail, &v.LocationName)
	if err != nil {
		return nil, err
	}
	v.Quote = *q
	return &v, nil
}

// GetView obtém o orçamento com cliente e local; nil se não existir.
func (r *QuoteRepo) GetView(ctx context.Context, id string) (*entity.QuoteView, error) {
	v, err := scanQuoteView(r.q.QueryRow(ctx, orcamentoViewSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orcamento view: %w", err)
	}
	return v, nil
}

// List lista orçamentos filtrados por status persistido, cliente e local,
// mais recentes primeiro.
func (r *QuoteRepo) List(ctx context.Context, f repository.QuoteFilter) ([]entity.QuoteView, error) {
	var conds []string
	var args []any
	add := func(cond, v string) {
		if v == "" {
			return
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	add("o.status::text = $%d", f.Status)
	add("o.client_id = $%d", f.ClientID)
	add("o.location_id = $%d", f.LocationID)

	query := orcamentoViewSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orcamentos: %w", err)
	}
	defer rows.Close()

	var list []entity.QuoteView
	for rows.Next() {
		v, err := scanQuoteView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan orcamento: %w", err)
		}
		list = append(list, *v)
	}
	return list, rows.Err()
}

// Lines devolve os itens do orçamento na ordem de criação.
func (r *QuoteRepo) Lines(ctx context.Context, quoteID string) ([]entity.QuoteLine, error) {
	query := `
		SELECT id, orcamento_id, product_id, quantity, und_medida::text, preco_unitario, subtotal, created_at
		FROM orcamento_items WHERE orcamento_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list orcamento items: %w", err)
	}
	defer rows.Close()

	var list []entity.QuoteLine
	for rows.Next() {
		var l entity.QuoteLine
		if err := rows.Scan(&l.ID, &l.QuoteID, &l.ProductID, &l.Quantity, &l.Unit, &l.UnitPrice, &l.Subtotal, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan orcamento item: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// LineViews devolve os itens com código e nome do produto.
func (r *QuoteRepo) LineViews(ctx context.Context, quoteID string) ([]entity.LineView, error) {
	return listLineViews(ctx, r.q, "orcamento_items", "orcamento_id", quoteID)
}

// ReplaceLines apaga os itens atuais e insere os novos.
func (r *QuoteRepo) ReplaceLines(ctx context.Context, quoteID string, lines []entity.QuoteLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM orcamento_items WHERE orcamento_id = $1`, quoteID); err != nil {
		return fmt.Errorf("delete orcamento items: %w", err)
	}
	query := `
		INSERT INTO orcamento_items (id, orcamento_id, product_id, quantity, und_medida, preco_unitario, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, l := range lines {
		if _, err := r.q.Exec(ctx, query, l.ID, quoteID, l.ProductID, l.Quantity, l.Unit, l.UnitPrice, l.Subtotal, l.CreatedAt); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: produto %s", domain.ErrNotFound, l.ProductID)
			}
			return fmt.Errorf("insert orcamento item: %w", err)
		}
	}
	return nil
}

// CodeExists informa se o código já está em uso na tabela orcamentos.
func (r *QuoteRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orcamentos WHERE codigo = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check codigo orcamento: %w", err)
	}
	return exists, nil
}

// listLineViews é compartilhado por orcamento_items e venda_items (mesmo formato).
func listLineViews(ctx context.Context, q Querier, table, fk, parentID string) ([]entity.LineView, error) {
	query := `
		SELECT i.id, i.product_id, i.quantity, i.und_medida::text, i.preco_unitario, i.subtotal,
			p.cod, p.nome, COALESCE(g.cod, ''), COALESCE(sg.cod, '')
		FROM ` + table + ` i
		JOIN products p ON p.id = i.product_id
		LEFT JOIN groups g ON g.id = p.grupo_id
		LEFT JOIN subgroups sg ON sg.id = p.subgrupo_id
		WHERE i.` + fk + ` = $1
		ORDER BY i.created_at, i.id`
	rows, err := q.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var list []entity.LineView
	for rows.Next() {
		var v entity.LineView
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.Quantity, &v.Unit, &v.UnitPrice, &v.Subtotal,
			&v.ProductCode, &v.ProductName, &v.GroupCode, &v.SubgroupCode,
		); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
