// Package repository holds the pgx-backed persistence layer. Every query
// is parameterized; lookups return (nil, nil) when no row matches so
// services own the not-found policy.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUniqueViolation is returned when an insert or update trips a unique
// constraint (users.email, categories.slug, delivery_men.nid).
var ErrUniqueViolation = errors.New("unique constraint violation")

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrUniqueViolation
	}
	return err
}
