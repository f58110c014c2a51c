package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Contable-api/internal/domain"
)

// Códigos SQLSTATE usados para traducir errores a errores de dominio.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidText         = "22P02" // ej. 'abc' comparado con una columna uuid
)

// stockCheckConstraint CHECK (quantity >= 0) de products; el resto de CHECKs son ErrInvalidInput.
const stockCheckConstraint = "products_quantity_nonnegative"

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool { return pgCode(err) == pgUniqueViolation }

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool { return pgCode(err) == pgForeignKeyViolation }

// isCheckViolation verifica si un error viola un CHECK (ej. quantity >= 0).
func isCheckViolation(err error) bool { return pgCode(err) == pgCheckViolation }

// isInvalidText id mal formado: equivale a "no existe".
func isInvalidText(err error) bool { return pgCode(err) == pgInvalidText }

// checkErr distingue el CHECK de stock del resto.
func checkErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if pgErr.ConstraintName == stockCheckConstraint {
		return domain.ErrNegativeStock
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, pgErr.ConstraintName)
}

// noRows convierte pgx.ErrNoRows en (nil, nil), la convención de los GetByID.
func noRows[T any](v *T, err error, what string) (*T, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", what, err)
	}
	return v, nil
}

// affectedOne devuelve ErrNotFound si el comando no afectó filas.
func affectedOne(tag pgconn.CommandTag, err error, what string) error {
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return domain.ErrConflict
		case isCheckViolation(err):
			return checkErr(err)
		case isInvalidText(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("%s: %w", what, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// insertErr traduce errores de INSERT.
func insertErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.ErrNotFound
	case isCheckViolation(err):
		return checkErr(err)
	case isInvalidText(err):
		return domain.ErrInvalidInput
	}
	return fmt.Errorf("insert %s: %w", what, err)
}
