package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
	}{
		{"admin", RoleAdmin},
		{"ADMIN", RoleAdmin},
		{"applicant", RoleApplicant},
		{"user", RoleApplicant},
		{" user ", RoleApplicant},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
		assert.True(t, got.Valid())
	}
}

func TestParseRole_Unknown(t *testing.T) {
	for _, raw := range []string{"", "superuser", "root"} {
		_, err := ParseRole(raw)
		assert.ErrorIs(t, err, ErrUnknownRole, raw)
	}
	assert.False(t, Role("owner").Valid())
}

func TestParseEnums(t *testing.T) {
	et, err := ParseEmploymentType("")
	require.NoError(t, err)
	assert.Equal(t, EmploymentFullTime, et)
	_, err = ParseEmploymentType("freelance")
	assert.Error(t, err)

	st, err := ParseJobStatus("closed")
	require.NoError(t, err)
	assert.Equal(t, JobStatusClosed, st)

	_, err = ParseApplicationStatus("")
	assert.Error(t, err)
	as, err := ParseApplicationStatus("accepted")
	require.NoError(t, err)
	assert.Equal(t, ApplicationAccepted, as)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"go", "sql"}, SplitList(" go, ,sql,"))
	assert.Nil(t, SplitList(""))
}
