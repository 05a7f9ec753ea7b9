package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrEmailTaken reports a users.email unique violation.
	ErrEmailTaken = errors.New("email already registered")
	// ErrAlreadyApplied reports a second application for the same job and applicant.
	ErrAlreadyApplied = errors.New("already applied for this job")
)

const (
	usersEmailKey         = "users_email_key"
	applicationsUniqueKey = "applications_job_id_applicant_id_key"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// execOne runs a statement that must touch exactly one row; zero rows maps to pgx.ErrNoRows.
func execOne(ctx context.Context, db execer, query string, args ...any) error {
	cmd, err := db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// nonNil keeps NOT NULL array columns from receiving SQL NULL.
func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// violates reports whether err is a Postgres error with the given SQLSTATE and,
// when constraint is non-empty, that constraint name.
func violates(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// translate swaps a matching unique violation for the given sentinel.
func translate(err error, constraint string, sentinel error) error {
	if violates(err, "23505", constraint) {
		return sentinel
	}
	return err
}
