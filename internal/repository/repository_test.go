package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-board/internal/domain"
)

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	if len(dest) != len(f.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(f.values[i]))
	}
	return nil
}

type fakeExecer struct {
	tag pgconn.CommandTag
	err error
}

func (f fakeExecer) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return f.tag, f.err
}

var created = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func userRow(role string) fakeRow {
	return fakeRow{values: []any{
		int64(5), "Bob", "bob@x.com", "hash", "/uploads/a.png", []string{"go"}, "/uploads/r.pdf", role, created, created,
	}}
}

func TestScanUser_ParsesRole(t *testing.T) {
	for raw, want := range map[string]domain.Role{
		"applicant": domain.RoleApplicant,
		"user":      domain.RoleApplicant,
		"admin":     domain.RoleAdmin,
	} {
		user, err := scanUser(userRow(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, want, user.Role, raw)
		assert.Equal(t, int64(5), user.ID)
		assert.Equal(t, []string{"go"}, user.Skills)
	}
}

func TestScanUser_UnknownRoleIsAnError(t *testing.T) {
	_, err := scanUser(userRow("superuser"))
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
}

func TestScanUser_NoRows(t *testing.T) {
	_, err := scanUser(fakeRow{err: pgx.ErrNoRows})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestScanJob(t *testing.T) {
	row := fakeRow{values: []any{
		int64(1), "Go dev", "<p>desc</p>", "Acme", "/uploads/l.png", "Remote",
		[]string{"go", "sql"}, "3 years", 1200.5, "Engineering", "contract", "closed",
		int64(2), "Ada", created,
	}}
	job, err := scanJob(row)
	require.NoError(t, err)
	assert.Equal(t, domain.EmploymentContract, job.EmploymentType)
	assert.Equal(t, domain.JobStatusClosed, job.Status)
	assert.Equal(t, "Ada", job.PostedByName)

	row.values[10] = "gig"
	_, err = scanJob(row)
	assert.Error(t, err)
}

func TestScanApplication(t *testing.T) {
	row := fakeRow{values: []any{
		int64(9), int64(1), int64(5), "/uploads/r.pdf", "accepted", created,
		"Go dev", "desc", "Acme", "Bob",
	}}
	app, err := scanApplication(row)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationAccepted, app.Status)
	assert.Equal(t, "Bob", app.ApplicantName)

	row.values[4] = "hired"
	_, err = scanApplication(row)
	assert.Error(t, err)
}

func TestExecOne(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, execOne(ctx, fakeExecer{tag: pgconn.NewCommandTag("UPDATE 1")}, "q"))
	assert.ErrorIs(t, execOne(ctx, fakeExecer{tag: pgconn.NewCommandTag("DELETE 0")}, "q"), pgx.ErrNoRows)

	boom := errors.New("boom")
	assert.ErrorIs(t, execOne(ctx, fakeExecer{err: boom}, "q"), boom)
}

func TestNonNil(t *testing.T) {
	assert.Equal(t, []string{}, nonNil(nil))
	assert.Equal(t, []string{"a"}, nonNil([]string{"a"}))
}

func TestTranslate_UniqueViolations(t *testing.T) {
	emailDup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	appDup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "applications_job_id_applicant_id_key"})

	assert.ErrorIs(t, translate(emailDup, usersEmailKey, ErrEmailTaken), ErrEmailTaken)
	assert.ErrorIs(t, translate(appDup, applicationsUniqueKey, ErrAlreadyApplied), ErrAlreadyApplied)

	// another constraint passes through untouched
	assert.Same(t, emailDup, translate(emailDup, applicationsUniqueKey, ErrAlreadyApplied))
	assert.NoError(t, translate(nil, usersEmailKey, ErrEmailTaken))
}

func TestViolates_ForeignKey(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "saved_jobs_job_id_fkey"}

	assert.True(t, violates(fk, "23503", ""))
	assert.True(t, violates(fmt.Errorf("tx: %w", fk), "23503", "saved_jobs_job_id_fkey"))
	assert.False(t, violates(fk, "23505", ""))
	assert.False(t, violates(errors.New("boom"), "23503", ""))
}
