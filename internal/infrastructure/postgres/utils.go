package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/erp-comercial/internal/domain"
)

// isUniqueViolation verifica se err é violação de constraint única (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isForeignKeyViolation verifica se err é violação de chave estrangeira (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

// constraintName devolve o nome da constraint violada, se houver.
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// mapCodeInsertError traduz violações na inserção de linhas com código sequencial.
func mapCodeInsertError(op, codeConstraint string, err error) error {
	if isUniqueViolation(err) && constraintName(err) == codeConstraint {
		return fmt.Errorf("%w: %s", domain.ErrCodeConflict, codeConstraint)
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: referência inexistente (%s)", domain.ErrNotFound, constraintName(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// mapWriteError traduz violações comuns em escritas de cadastro.
func mapWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, constraintName(err))
	}
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: registro referenciado por outros dados ou referência inexistente", domain.ErrInvalidState)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullIfEmpty converte "" em NULL para colunas opcionais.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
