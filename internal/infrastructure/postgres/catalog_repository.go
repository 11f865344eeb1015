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

var (
	_ repository.GroupRepository    = (*GroupRepo)(nil)
	_ repository.SubgroupRepository = (*SubgroupRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
)

// execAffecting executa uma escrita e devolve ErrNotFound se nenhuma linha mudou.
func execAffecting(ctx context.Context, q Querier, op, query string, args ...any) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GroupRepo tabela groups.
type GroupRepo struct{ q Querier }

func NewGroupRepository(q Querier) *GroupRepo { return &GroupRepo{q: q} }

func (r *GroupRepo) Create(ctx context.Context, g *entity.Group) error {
	_, err := r.q.Exec(ctx, `INSERT INTO groups (id, cod, nome, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		g.ID, g.Code, g.Name, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return mapWriteError("insert group", err)
	}
	return nil
}

func (r *GroupRepo) Update(ctx context.Context, g *entity.Group) error {
	return execAffecting(ctx, r.q, "update group",
		`UPDATE groups SET cod = $2, nome = $3, updated_at = $4 WHERE id = $1`, g.ID, g.Code, g.Name, g.UpdatedAt)
}

func (r *GroupRepo) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.q, "delete group", `DELETE FROM groups WHERE id = $1`, id)
}

func (r *GroupRepo) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	var g entity.Group
	err := r.q.QueryRow(ctx, `SELECT id, cod, nome, created_at, updated_at FROM groups WHERE id = $1`, id).
		Scan(&g.ID, &g.Code, &g.Name, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}

func (r *GroupRepo) List(ctx context.Context) ([]entity.Group, error) {
	rows, err := r.q.Query(ctx, `SELECT id, cod, nome, created_at, updated_at FROM groups ORDER BY cod`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()
	var list []entity.Group
	for rows.Next() {
		var g entity.Group
		if err := rows.Scan(&g.ID, &g.Code, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		list = append(list, g)
	}
	return list, rows.Err()
}

// SubgroupRepo tabela subgroups.
type SubgroupRepo struct{ q Querier }

func NewSubgroupRepository(q Querier) *SubgroupRepo { return &SubgroupRepo{q: q} }

func (r *SubgroupRepo) Create(ctx context.Context, s *entity.Subgroup) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO subgroups (id, cod, nome, group_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Code, s.Name, s.GroupID, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: grupo inexistente", domain.ErrNotFound)
		}
		return mapWriteError("insert subgroup", err)
	}
	return nil
}

func (r *SubgroupRepo) Update(ctx context.Context, s *entity.Subgroup) error {
	return execAffecting(ctx, r.q, "update subgroup",
		`UPDATE subgroups SET cod = $2, nome = $3, group_id = $4, updated_at = $5 WHERE id = $1`,
		s.ID, s.Code, s.Name, s.GroupID, s.UpdatedAt)
}

func (r *SubgroupRepo) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.q, "delete subgroup", `DELETE FROM subgroups WHERE id = $1`, id)
}

func (r *SubgroupRepo) GetByID(ctx context.Context, id string) (*entity.Subgroup, error) {
	var s entity.Subgroup
	err := r.q.QueryRow(ctx, `SELECT id, cod, nome, group_id, created_at, updated_at FROM subgroups WHERE id = $1`, id).
		Scan(&s.ID, &s.Code, &s.Name, &s.GroupID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subgroup: %w", err)
	}
	return &s, nil
}

// List devolve todos os subgrupos ou apenas os de groupID.
func (r *SubgroupRepo) List(ctx context.Context, groupID string) ([]entity.Subgroup, error) {
	query := `SELECT id, cod, nome, group_id, created_at, updated_at FROM subgroups`
	var args []any
	if groupID != "" {
		query += ` WHERE group_id = $1`
		args = append(args, groupID)
	}
	query += ` ORDER BY cod`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subgroups: %w", err)
	}
	defer rows.Close()
	var list []entity.Subgroup
	for rows.Next() {
		var s entity.Subgroup
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.GroupID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subgroup: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// LocationRepo tabela locations.
type LocationRepo struct{ q Querier }

func NewLocationRepository(q Querier) *LocationRepo { return &LocationRepo{q: q} }

const locationColumns = `id, nome, COALESCE(endereco, ''), COALESCE(numero, ''), COALESCE(bairro, ''),
	COALESCE(cidade, ''), COALESCE(cep, ''), created_at, updated_at`

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO locations (id, nome, endereco, numero, bairro, cidade, cep, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.Name, nullIfEmpty(l.Address), nullIfEmpty(l.Number), nullIfEmpty(l.District),
		nullIfEmpty(l.City), nullIfEmpty(l.ZipCode), l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return mapWriteError("insert location", err)
	}
	return nil
}

func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	return execAffecting(ctx, r.q, "update location", `
		UPDATE locations SET nome = $2, endereco = $3, numero = $4, bairro = $5, cidade = $6, cep = $7, updated_at = $8
		WHERE id = $1`,
		l.ID, l.Name, nullIfEmpty(l.Address), nullIfEmpty(l.Number), nullIfEmpty(l.District),
		nullIfEmpty(l.City), nullIfEmpty(l.ZipCode), l.UpdatedAt)
}

func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.q, "delete location", `DELETE FROM locations WHERE id = $1`, id)
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id).Scan(
		&l.ID, &l.Name, &l.Address, &l.Number, &l.District, &l.City, &l.ZipCode, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

func (r *LocationRepo) List(ctx context.Context) ([]entity.Location, error) {
	rows, err := r.q.Query(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Number, &l.District, &l.City, &l.ZipCode, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
