// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cedars-leadgen/internal/catalog"
)

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	path := writeRegistry(t, `{
		"version": "1",
		"lastUpdated": "2026-08-01",
		"categories": [
			{
				"name": "Coworking Spaces",
				"templates": ["coworking space {city}", "shared office {city}"],
				"tags": ["b2b"]
			}
		]
	}`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	require.Len(t, reg.Categories, 1)
	assert.Equal(t, "Coworking Spaces", reg.Categories[0].Name)
	assert.Len(t, reg.Categories[0].Templates, 2)
}

func TestLoadRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing categories",
			content: `{"version": "1"}`,
		},
		{
			name:    "empty templates",
			content: `{"version": "1", "categories": [{"name": "X", "templates": []}]}`,
		},
		{
			name:    "template without city token",
			content: `{"version": "1", "categories": [{"name": "X", "templates": ["coworking space"]}]}`,
		},
		{
			name:    "not json",
			content: `version: 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRegistry(t, tt.content)
			_, err := LoadRegistry(path)
			assert.Error(t, err)
		})
	}
}

func TestMergeIntoCatalog(t *testing.T) {
	reg := &CategoryRegistry{
		Version: "1",
		Categories: []Category{
			{Name: "Coworking Spaces", Templates: []string{"coworking space {city}"}},
			{Name: "Automotive", Templates: []string{"ev charging installer {city}"}},
		},
	}

	merged, err := MergeIntoCatalog(catalog.Default(), reg)
	require.NoError(t, err)

	// New category appends after the built-ins.
	names := merged.Names()
	assert.Equal(t, "Coworking Spaces", names[len(names)-1])
	assert.Len(t, names, 21)

	// Existing category is overridden, not duplicated.
	templates, err := merged.TemplatesFor("Automotive")
	require.NoError(t, err)
	assert.Equal(t, []string{"ev charging installer {city}"}, templates)
}
