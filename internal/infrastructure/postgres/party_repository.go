package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// Tabelas com o formato de Party.
const (
	ClientsTable   = "clients"
	SuppliersTable = "suppliers"
)

// PartyRepo serve clients e suppliers; table é fixada na construção.
type PartyRepo struct {
	q     Querier
	table string
}

// NewClientRepository constrói o adaptador de clientes.
func NewClientRepository(q Querier) *PartyRepo { return &PartyRepo{q: q, table: ClientsTable} }

// NewSupplierRepository constrói o adaptador de fornecedores.
func NewSupplierRepository(q Querier) *PartyRepo { return &PartyRepo{q: q, table: SuppliersTable} }

const partyColumns = `id, nome, COALESCE(email, ''), COALESCE(telefone, ''), COALESCE(cpf_cnpj, ''),
	COALESCE(endereco, ''), COALESCE(numero, ''), COALESCE(cidade, ''), COALESCE(estado, ''), COALESCE(cep, ''),
	is_active, created_at, updated_at`

func scanParty(row pgx.Row) (*entity.Party, error) {
	var p entity.Party
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.TaxID, &p.Address, &p.Number,
		&p.City, &p.State, &p.ZipCode, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PartyRepo) Create(ctx context.Context, p *entity.Party) error {
	query := `INSERT INTO ` + r.table + ` (id, nome, email, telefone, cpf_cnpj, endereco, numero, cidade, estado, cep,
		is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullIfEmpty(p.Email), nullIfEmpty(p.Phone), nullIfEmpty(p.TaxID), nullIfEmpty(p.Address),
		nullIfEmpty(p.Number), nullIfEmpty(p.City), nullIfEmpty(p.State), nullIfEmpty(p.ZipCode),
		p.IsActive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapWriteError("insert "+r.table, err)
	}
	return nil
}

func (r *PartyRepo) Update(ctx context.Context, p *entity.Party) error {
	return execAffecting(ctx, r.q, "update "+r.table, `UPDATE `+r.table+` SET nome = $2, email = $3, telefone = $4,
		cpf_cnpj = $5, endereco = $6, numero = $7, cidade = $8, estado = $9, cep = $10, is_active = $11, updated_at = $12
		WHERE id = $1`,
		p.ID, p.Name, nullIfEmpty(p.Email), nullIfEmpty(p.Phone), nullIfEmpty(p.TaxID), nullIfEmpty(p.Address),
		nullIfEmpty(p.Number), nullIfEmpty(p.City), nullIfEmpty(p.State), nullIfEmpty(p.ZipCode),
		p.IsActive, p.UpdatedAt)
}

func (r *PartyRepo) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.q, "delete "+r.table, `DELETE FROM `+r.table+` WHERE id = $1`, id)
}

func (r *PartyRepo) GetByID(ctx context.Context, id string) (*entity.Party, error) {
	p, err := scanParty(r.q.QueryRow(ctx, `SELECT `+partyColumns+` FROM `+r.table+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.table, err)
	}
	return p, nil
}

// List ordena por nome; onlyActive filtra os inativos.
func (r *PartyRepo) List(ctx context.Context, onlyActive bool) ([]entity.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM ` + r.table
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY nome`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	defer rows.Close()

	var list []entity.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}
