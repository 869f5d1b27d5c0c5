// internal/common/config/loader_test.go
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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
places:
  api_key: "test-key"
database:
  postgres:
    host: "localhost"
    database: "leadgen"
    user: "leadgen"
  redis:
    address: "localhost:6379"
`

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, ":9090", cfg.Server.OpsAddress)
	assert.Equal(t, "https://maps.googleapis.com/maps/api/place", cfg.Places.BaseURL)
	assert.Equal(t, 2000, cfg.Places.PageTokenDelay)
	assert.Equal(t, 15000, cfg.Places.Timeout)
	assert.Equal(t, 25, cfg.Database.Postgres.MaxConnections)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "lead-history", cfg.Database.Elasticsearch.Index)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Stream.EmitErrorEvent)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_PLACES_KEY", "expanded-key")

	cfg, err := LoadFromFile(writeConfig(t, `
places:
  api_key: "${TEST_PLACES_KEY}"
database:
  postgres:
    host: "localhost"
    database: "leadgen"
    user: "leadgen"
  redis:
    address: "localhost:6379"
`))
	require.NoError(t, err)
	assert.Equal(t, "expanded-key", cfg.Places.APIKey)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing api key",
			content: `
database:
  postgres:
    host: "localhost"
    database: "leadgen"
    user: "leadgen"
  redis:
    address: "localhost:6379"
`,
			wantErr: "places.api_key",
		},
		{
			name: "missing postgres host",
			content: `
places:
  api_key: "k"
database:
  postgres:
    database: "leadgen"
    user: "leadgen"
  redis:
    address: "localhost:6379"
`,
			wantErr: "database.postgres.host",
		},
		{
			name: "elasticsearch enabled without addresses",
			content: minimalConfig + `
  elasticsearch:
    enabled: true
`,
			wantErr: "database.elasticsearch.addresses",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, "2s", GetDuration(2000).String())
	assert.Equal(t, "0s", GetDuration(0).String())
}
