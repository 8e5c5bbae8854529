package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("decodes all fields", func(t *testing.T) {
		t.Parallel()
		path := writeProfile(t, `
registry_base  = "https://example.org/resources/"
publisher      = "ce-pub-1, ce-pub-2"
owned_by       = "ce-own"
courses_dir    = "out/courses"
frameworks_dir = "out/frameworks"
programs_dir   = "out/programs"
report_path    = "out/validations.json"
`)
		p, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "https://example.org/resources/", p.RegistryBase)
		assert.Equal(t, "ce-pub-1, ce-pub-2", p.Publisher)
		assert.Equal(t, "ce-own", p.OwnedBy)
		assert.Equal(t, "out/courses", p.CoursesDir)
		assert.Equal(t, "out/validations.json", p.ReportPath)
		assert.Empty(t, p.OfferedBy, "unset optional fields stay empty")
	})

	t.Run("env references resolve", func(t *testing.T) {
		t.Setenv("CASEBRIDGE_TEST_PUBLISHER", "ce-from-env")
		path := writeProfile(t, `publisher = env.CASEBRIDGE_TEST_PUBLISHER`)
		p, err := Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "ce-from-env", p.Publisher)
	})

	t.Run("syntax error is fatal", func(t *testing.T) {
		t.Parallel()
		path := writeProfile(t, `publisher = `)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("missing file is fatal", func(t *testing.T) {
		t.Parallel()
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
		require.Error(t, err)
	})

	t.Run("unknown attribute is fatal", func(t *testing.T) {
		t.Parallel()
		path := writeProfile(t, `no_such_setting = true`)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode")
	})
}
