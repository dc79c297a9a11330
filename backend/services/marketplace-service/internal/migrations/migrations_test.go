package migrations

import (
	"strings"
	"testing"

	"github.com/staynest/mono-repo/backend/shared/go-repositories"
	"github.com/stretchr/testify/require"
)

func TestLoadOrdersEmbeddedFiles(t *testing.T) {
	all, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, all)
	require.Equal(t, "0001", all[0].Version)
	require.Equal(t, "init", all[0].Name)

	seen := map[string]bool{}
	for i, m := range all {
		require.False(t, seen[m.Version], "duplicate version %s", m.Version)
		seen[m.Version] = true
		if i > 0 {
			require.Less(t, all[i-1].Version, m.Version)
		}
	}
}

func TestSchemaNamesConstraintsTheRepositoriesClassify(t *testing.T) {
	all, err := Load()
	require.NoError(t, err)
	var schema strings.Builder
	for _, m := range all {
		schema.WriteString(m.SQL)
	}
	for _, name := range []string{
		repositories.ConstraintUsersEmail,
		repositories.ConstraintListingsSlug,
		repositories.ConstraintListingsProperty,
		repositories.ConstraintApplicationsFreelancer,
		repositories.ConstraintProfilesUser,
	} {
		require.Contains(t, schema.String(), "CONSTRAINT "+name+" ")
	}
}
