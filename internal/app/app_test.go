package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("requires a source", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Source is a required configuration field")
	})

	t.Run("rejects an unknown pass", func(t *testing.T) {
		t.Parallel()
		_, err := NewConfig(Config{Source: "pkg.json", Passes: "everything"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `invalid passes value "everything"`)
	})

	t.Run("accepts each pass value", func(t *testing.T) {
		t.Parallel()
		for _, passes := range []string{"", PassFrameworks, PassPrograms, PassAll} {
			_, err := NewConfig(Config{Source: "pkg.json", Passes: passes})
			assert.NoError(t, err, "passes=%q", passes)
		}
	})
}

func TestNewApp_ProfileMerge(t *testing.T) {
	t.Parallel()

	profilePath := writeTempFile(t, "profile.hcl", `
publisher      = "ce-profile-publisher"
owned_by       = "ce-profile-owner"
frameworks_dir = "profile_frameworks"
`)

	t.Run("profile fills empty fields", func(t *testing.T) {
		t.Parallel()
		a := NewApp(&bytes.Buffer{}, &Config{Source: "pkg.json", ProfilePath: profilePath})
		cfg := a.Config()
		assert.Equal(t, "ce-profile-publisher", cfg.Publisher)
		assert.Equal(t, "ce-profile-owner", cfg.OwnedBy)
		assert.Equal(t, "profile_frameworks", cfg.FrameworksDir)
	})

	t.Run("explicit flags win over the profile", func(t *testing.T) {
		t.Parallel()
		a := NewApp(&bytes.Buffer{}, &Config{
			Source:      "pkg.json",
			ProfilePath: profilePath,
			Publisher:   "ce-flag-publisher",
		})
		cfg := a.Config()
		assert.Equal(t, "ce-flag-publisher", cfg.Publisher)
		assert.Equal(t, "ce-profile-owner", cfg.OwnedBy)
	})

	t.Run("defaults fill the remainder", func(t *testing.T) {
		t.Parallel()
		a := NewApp(&bytes.Buffer{}, &Config{Source: "pkg.json"})
		cfg := a.Config()
		assert.Equal(t, "courses_out", cfg.CoursesDir)
		assert.Equal(t, "validations.json", cfg.ReportPath)
		assert.Equal(t, PassFrameworks, cfg.Passes)
	})

	t.Run("unloadable profile panics", func(t *testing.T) {
		t.Parallel()
		require.Panics(t, func() {
			NewApp(&bytes.Buffer{}, &Config{Source: "pkg.json", ProfilePath: "does-not-exist.hcl"})
		})
	})
}

func TestRun_ProgramPassGuards(t *testing.T) {
	t.Parallel()

	pkg := map[string]any{
		"CFDocument": map[string]any{"language": "en"},
		"CFItems": []map[string]any{
			{"identifier": "path-1", "CFItemType": "Pathway", "fullStatement": "Pathway"},
		},
	}
	data, err := json.Marshal(pkg)
	require.NoError(t, err)

	newRunConfig := func(t *testing.T) *Config {
		dir := t.TempDir()
		source := filepath.Join(dir, "pkg.json")
		require.NoError(t, os.WriteFile(source, data, 0o600))
		return &Config{
			Source:            source,
			Passes:            PassPrograms,
			ProgramsDir:       filepath.Join(dir, "programs"),
			ProgramReportPath: filepath.Join(dir, "report.json"),
		}
	}

	t.Run("missing publisher", func(t *testing.T) {
		t.Parallel()
		cfg := newRunConfig(t)
		cfg.OwnedBy = "ce-owner"
		err := NewApp(&bytes.Buffer{}, cfg).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires at least one publisher CTID/URI")
	})

	t.Run("missing ownedBy and offeredBy", func(t *testing.T) {
		t.Parallel()
		cfg := newRunConfig(t)
		cfg.Publisher = "ce-publisher"
		err := NewApp(&bytes.Buffer{}, cfg).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires at least one of ownedBy or offeredBy")
	})

	t.Run("satisfied guards write the wrapper", func(t *testing.T) {
		t.Parallel()
		cfg := newRunConfig(t)
		cfg.Publisher = "ce-publisher"
		cfg.OfferedBy = "ce-offerer"
		require.NoError(t, NewApp(&bytes.Buffer{}, cfg).Run(context.Background()))

		raw, err := os.ReadFile(filepath.Join(cfg.ProgramsDir, "learningprogram_ce-path-1.json"))
		require.NoError(t, err)
		var wrapper map[string]any
		require.NoError(t, json.Unmarshal(raw, &wrapper))
		assert.Equal(t, "ce-publisher", wrapper["PublishForOrganizationIdentifier"])
	})
}
