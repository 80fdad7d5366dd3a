package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/credits-index/internal/credits"
)

const roninCatalog = `[[works]]
name = "Ronin"
director = "John Frankenheimer"
release_date = "1998-09-25"

[[steps]]
op = "release"
work = "Ronin"
participants = ["Robert De Niro", "Jean Reno"]

[[steps]]
op = "tag"
work = "Ronin"
participants = ["Natascha McElhone"]
`

// clearTestEnvironment removes all envs from the test environment, so the options only come
// from the flags each test sets.
func clearTestEnvironment(t *testing.T) {
	t.Helper()

	for _, env := range os.Environ() {
		key := env[:strings.Index(env, "=")]
		t.Setenv(key, "")
	}
}

func Test_IngestCommand(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "ronin.toml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(roninCatalog), 0o600))

	t.Run("🟢prints_the_requested_lookups", func(t *testing.T) {
		clearTestEnvironment(t)

		ingestCommand := (&ingestCmd{}).Command()
		out := new(strings.Builder)
		ingestCommand.SetOut(out)
		ingestCommand.SetArgs([]string{
			"--catalog-path", catalogPath,
			"--works", "Ronin",
			"--participants", "Jean Reno",
		})

		err := ingestCommand.Execute()
		require.NoError(t, err)

		assert.Contains(t, out.String(), "== Ronin ==\nName: Jean Reno\n")
		assert.Contains(t, out.String(), "Name: Natascha McElhone\n")
		assert.Contains(t, out.String(), "== Jean Reno ==\nName: Ronin\nDirector: John Frankenheimer\nRelease date: 1998-09-25\n")
	})

	t.Run("🔴fails_for_an_unknown_work", func(t *testing.T) {
		clearTestEnvironment(t)

		ingestCommand := (&ingestCmd{}).Command()
		out := new(strings.Builder)
		ingestCommand.SetOut(out)
		ingestCommand.SetErr(new(strings.Builder))
		ingestCommand.SetArgs([]string{
			"--catalog-path", catalogPath,
			"--works", "Heat",
		})

		err := ingestCommand.Execute()
		assert.ErrorIs(t, err, credits.ErrWorkNotFound)
		assert.ErrorContains(t, err, "running ingest: looking up works")
		assert.Contains(t, out.String(), `getting participants for work "Heat": work not found`)
	})

	t.Run("🔴rejects_an_unknown_release_mode", func(t *testing.T) {
		clearTestEnvironment(t)

		ingestCommand := (&ingestCmd{}).Command()
		ingestCommand.SetOut(new(strings.Builder))
		ingestCommand.SetErr(new(strings.Builder))
		ingestCommand.SetArgs([]string{
			"--catalog-path", catalogPath,
			"--release-mode", "lenient",
		})

		err := ingestCommand.Execute()
		assert.ErrorContains(t, err, "setting values of config options")
		assert.ErrorContains(t, err, `invalid release mode "lenient"`)
	})
}
