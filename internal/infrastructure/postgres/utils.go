package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/estoque-api/internal/domain"
)

// Códigos SQLSTATE que se tratan de forma explícita.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isRetryable conflictos de concurrencia que se resuelven repitiendo la transacción completa.
func isRetryable(err error) bool {
	switch pgCode(err) {
	case codeSerializationFailure, codeDeadlockDetected:
		return true
	}
	return false
}

// validID las columnas id son UUID; un id con otro formato no puede existir y se trata como ausente
// en lugar de dejar que Postgres devuelva 22P02.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// wrapErr envuelve errores del driver en PersistenceError; los de dominio pasan intactos.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsDomainError(err) {
		return err
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	}
	return &domain.PersistenceError{Op: op, Err: err}
}
