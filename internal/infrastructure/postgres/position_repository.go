package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
	"github.com/jhoicas/erp-comercial/internal/domain/repository"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo tabela jobs (cargos). job_users cai em cascata ao remover.
type PositionRepo struct{ q Querier }

func NewPositionRepository(q Querier) *PositionRepo { return &PositionRepo{q: q} }

func (r *PositionRepo) Create(ctx context.Context, p *entity.Position) error {
	_, err := r.q.Exec(ctx, `INSERT INTO jobs (id, nome, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		p.ID, p.Name, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapWriteError("insert job", err)
	}
	return nil
}

func (r *PositionRepo) Update(ctx context.Context, p *entity.Position) error {
	return execAffecting(ctx, r.q, "update job",
		`UPDATE jobs SET nome = $2, updated_at = $3 WHERE id = $1`, p.ID, p.Name, p.UpdatedAt)
}

func (r *PositionRepo) Delete(ctx context.Context, id string) error {
	return execAffecting(ctx, r.q, "delete job", `DELETE FROM jobs WHERE id = $1`, id)
}

func (r *PositionRepo) GetByID(ctx context.Context, id string) (*entity.Position, error) {
	var p entity.Position
	err := r.q.QueryRow(ctx, `SELECT id, nome, created_at, updated_at FROM jobs WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return &p, nil
}

func (r *PositionRepo) List(ctx context.Context) ([]entity.Position, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nome, created_at, updated_at FROM jobs ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	var list []entity.Position
	for rows.Next() {
		var p entity.Position
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
