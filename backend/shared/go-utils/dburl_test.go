package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithIsolatedRole(t *testing.T) {
	out, err := WithIsolatedRole("postgres://app:s3cret@db:5432/staynest?sslmode=disable", "GH-Runner", "42")
	require.NoError(t, err)
	require.Equal(t, "postgres://gh-runner-42:s3cret@db:5432/staynest?sslmode=disable", out)

	_, err = WithIsolatedRole("postgres://db/staynest", "", "42")
	require.Error(t, err)

	_, err = WithIsolatedRole("mysql://db/staynest", "runner", "1")
	require.Error(t, err)
}
