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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação do UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador de usuários.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userSelect = `
	SELECT u.id, u.name, u.email, u.password_hash, u.role, u.is_active,
	       COALESCE(j.id, ''), COALESCE(j.nome, ''), u.created_at, u.updated_at
	FROM users u
	LEFT JOIN job_users ju ON ju.user_id = u.id
	LEFT JOIN jobs j ON j.id = ju.job_id`

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive,
		&u.PositionID, &u.PositionName, &u.CreatedAt, &u.UpdatedAt)
}

// Create persiste um novo usuário.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.IsActive, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update grava nome, email, papel, status e hash de senha.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	err := execAffecting(ctx, r.q, "update user", `
		UPDATE users SET name = $2, email = $3, password_hash = $4, role = $5, is_active = $6, updated_at = $7
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.IsActive, u.UpdatedAt)
	if errors.Is(err, domain.ErrDuplicate) {
		return domain.ErrEmailAlreadyExists
	}
	return err
}

// SetPosition grava ou remove a linha de job_users do usuário.
func (r *UserRepo) SetPosition(ctx context.Context, userID, positionID string) error {
	if positionID == "" {
		if _, err := r.q.Exec(ctx, `DELETE FROM job_users WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("clear user position: %w", err)
		}
		return nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO job_users (user_id, job_id) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET job_id = EXCLUDED.job_id`, userID, positionID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cargo ou usuário inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("set user position: %w", err)
	}
	return nil
}

// GetByID obtém um usuário pelo ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, userSelect+` WHERE u.id = $1`, id)
}

// FindByEmail obtém um usuário pelo email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, userSelect+` WHERE lower(u.email) = lower($1)`, email)
}

func (r *UserRepo) findOne(ctx context.Context, query, arg string) (*entity.User, error) {
	var u entity.User
	if err := scanUser(r.q.QueryRow(ctx, query, arg), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// List lista usuários por nome.
func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.q.Query(ctx, userSelect+` ORDER BY u.name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []entity.User
	for rows.Next() {
		var u entity.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
