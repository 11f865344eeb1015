package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-comercial/internal/domain"
	"github.com/jhoicas/erp-comercial/internal/domain/entity"
)

func TestUserSetPosition_UpsertPorUsuario(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewUserRepository(q)

	require.NoError(t, repo.SetPosition(context.Background(), "U1", "J1"))
	require.Len(t, q.sql, 1)
	assert.Contains(t, q.sql[0], "INSERT INTO job_users")
	assert.Contains(t, q.sql[0], "ON CONFLICT (user_id) DO UPDATE")
	assert.Equal(t, []any{"U1", "J1"}, q.args[0])
}

func TestUserSetPosition_VazioRemove(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewUserRepository(q)

	require.NoError(t, repo.SetPosition(context.Background(), "U1", ""))
	require.Len(t, q.sql, 1)
	assert.Contains(t, q.sql[0], "DELETE FROM job_users")
}

func TestUserSetPosition_CargoInexistente(t *testing.T) {
	q := &recordingQuerier{execErr: &pgconn.PgError{Code: "23503", ConstraintName: "job_users_job_id_fkey"}}
	repo := NewUserRepository(q)

	err := repo.SetPosition(context.Background(), "U1", "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUpdate_EmailDuplicado(t *testing.T) {
	q := &recordingQuerier{execErr: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}}
	repo := NewUserRepository(q)

	err := repo.Update(context.Background(), &entity.User{ID: "U1", Email: "a@b.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUpdate_GravaEmail(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewUserRepository(q)

	require.NoError(t, repo.Update(context.Background(), &entity.User{ID: "U1", Name: "Ana", Email: "ana@b.com"}))
	assert.Contains(t, q.sql[0], "email = $3")
	assert.Equal(t, "ana@b.com", q.args[0][2])
}

func TestUserGetByID_LeCargoPorJoin(t *testing.T) {
	q := &recordingQuerier{rowErr: pgx.ErrNoRows}
	repo := NewUserRepository(q)

	u, err := repo.GetByID(context.Background(), "U1")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Contains(t, q.sql[0], "LEFT JOIN job_users ju ON ju.user_id = u.id")
	assert.Contains(t, q.sql[0], "WHERE u.id = $1")
}
