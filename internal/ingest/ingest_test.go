package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/credits-index/internal/catalog"
	"github.com/stellar/credits-index/internal/credits"
)

const heatCatalog = `works:
  - name: Heat
    director: Michael Mann
    release_date: "1995-12-15"
participants:
  - name: Al Pacino
    birthdate: "1940-04-25"
    birth_city: New York
steps:
  - op: release
    work: Heat
    participants: [Al Pacino, Val Kilmer]
  - op: release
    work: Heat
    participants: [Al Pacino]
  - op: remove
    work: Casino
`

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestIngest(t *testing.T) {
	ctx := context.Background()
	catalogPath := writeCatalog(t, "heat.yaml", heatCatalog)

	t.Run("🟢prints_lookups_in_compatible_mode", func(t *testing.T) {
		out := &strings.Builder{}
		err := Ingest(ctx, Configs{
			CatalogPath:  catalogPath,
			ReleaseMode:  credits.ReleaseModeCompatible,
			LogLevel:     logrus.InfoLevel,
			Works:        []string{"Heat"},
			Participants: []string{"Val Kilmer"},
		}, out)
		require.NoError(t, err)

		wantOutput := "== Heat ==\n" +
			"Name: Al Pacino\nBirthday: 1940-04-25\nBirth city: New York\n\n" +
			"== Val Kilmer ==\n" +
			"Name: Heat\nDirector: Michael Mann\nRelease date: 1995-12-15\n\n"
		assert.Equal(t, wantOutput, out.String())
	})

	t.Run("🟢strict_mode_drops_the_reverse_credit", func(t *testing.T) {
		out := &strings.Builder{}
		err := Ingest(ctx, Configs{
			CatalogPath:  catalogPath,
			ReleaseMode:  credits.ReleaseModeStrict,
			LogLevel:     logrus.InfoLevel,
			Participants: []string{"Val Kilmer"},
		}, out)
		require.NoError(t, err)
		assert.Equal(t, "== Val Kilmer ==\n", out.String())
	})

	t.Run("🟢dumps_metrics", func(t *testing.T) {
		out := &strings.Builder{}
		err := Ingest(ctx, Configs{
			CatalogPath: catalogPath,
			ReleaseMode: credits.ReleaseModeCompatible,
			LogLevel:    logrus.InfoLevel,
			DumpMetrics: true,
		}, out)
		require.NoError(t, err)

		assert.Contains(t, out.String(), `credits_index_operations_total{operation="release"} 2`)
		assert.Contains(t, out.String(), `credits_index_operations_total{operation="remove"} 1`)
		assert.Contains(t, out.String(), "credits_index_works 1")
		assert.Contains(t, out.String(), "credits_index_credits 1")
		assert.Contains(t, out.String(), "credits_index_stale_credits 1")
	})

	t.Run("🔴unknown_work_lookup_keeps_going", func(t *testing.T) {
		out := &strings.Builder{}
		err := Ingest(ctx, Configs{
			CatalogPath:  catalogPath,
			ReleaseMode:  credits.ReleaseModeCompatible,
			LogLevel:     logrus.InfoLevel,
			Works:        []string{"Casino", "Heat"},
			Participants: []string{"Al Pacino"},
		}, out)
		assert.ErrorIs(t, err, credits.ErrWorkNotFound)
		assert.EqualError(t, err, `looking up works: getting participants for work "Casino": work not found`)

		assert.True(t, strings.HasPrefix(out.String(), "== Casino ==\ngetting participants for work \"Casino\": work not found\n\n== Heat ==\n"))
		assert.Contains(t, out.String(), "== Al Pacino ==\nName: Heat\n")
	})

	t.Run("🔴invalid_release_mode", func(t *testing.T) {
		err := Ingest(ctx, Configs{
			CatalogPath: catalogPath,
			ReleaseMode: credits.ReleaseMode("lenient"),
			LogLevel:    logrus.InfoLevel,
		}, &strings.Builder{})
		assert.ErrorIs(t, err, credits.ErrInvalidReleaseMode)
	})

	t.Run("🔴invalid_catalog", func(t *testing.T) {
		path := writeCatalog(t, "broken.toml", "[[steps]]\nop = \"tag\"\nwork = \"Heat\"\n")

		err := Ingest(ctx, Configs{
			CatalogPath: path,
			ReleaseMode: credits.ReleaseModeCompatible,
			LogLevel:    logrus.InfoLevel,
		}, &strings.Builder{})
		assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
	})
}
