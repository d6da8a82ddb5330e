package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `{
		"sources": {
			"artificial-analysis": {"api_key": "sk-test"}
		},
		"cache": {"ttl_hours": 6, "dir": "/tmp/pondus-cache"},
		"use_browser": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Cache.TTLHours)
	assert.Equal(t, "/tmp/pondus-cache", cfg.Cache.Dir)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, "sk-test", cfg.APIKey("artificial-analysis"))
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"cache": `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_SchemaViolation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown top-level key", `{"caching": {}}`},
		{"wrong ttl type", `{"cache": {"ttl_hours": "six"}}`},
		{"ttl below minimum", `{"cache": {"ttl_hours": 0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingAliasOverride(t *testing.T) {
	path := writeConfig(t, `{"alias": {"path": "/does/not/exist.json"}}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestAPIKey_EnvOverridesFile(t *testing.T) {
	cfg := &Config{
		Sources: map[string]SourceConfig{
			"artificial-analysis": {APIKey: "from-file"},
		},
	}

	assert.Equal(t, "from-file", cfg.APIKey("artificial-analysis"))

	t.Setenv("AA_API_KEY", "from-env")
	assert.Equal(t, "from-env", cfg.APIKey("artificial-analysis"))

	t.Setenv("ARTIFICIAL_ANALYSIS_API_KEY", "from-long-env")
	assert.Equal(t, "from-long-env", cfg.APIKey("artificial-analysis"))
}

func TestAPIKey_UnknownSource(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "", cfg.APIKey("arena"))
}
