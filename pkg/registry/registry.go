// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"cedars-leadgen/internal/catalog"
	"cedars-leadgen/internal/common/validation"
)

// LoadRegistry reads and validates a category registry file.
func LoadRegistry(path string) (*CategoryRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var document map[string]interface{}
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	result, err := validation.Validate(document, registrySchema)
	if err != nil {
		return nil, fmt.Errorf("validate registry: %w", err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("registry %s failed validation: %s", path, result.Errors[0].Message)
	}

	var reg CategoryRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}

	for _, cat := range reg.Categories {
		for _, tpl := range cat.Templates {
			if !strings.Contains(tpl, catalog.CityToken) {
				return nil, fmt.Errorf("category %q: template %q is missing %s", cat.Name, tpl, catalog.CityToken)
			}
		}
	}

	return &reg, nil
}

// MergeIntoCatalog builds a catalog from the defaults plus the registry's
// categories. A registry category with a built-in name replaces the built-in
// templates; new names append in registry order.
func MergeIntoCatalog(base *catalog.Catalog, reg *CategoryRegistry) (*catalog.Catalog, error) {
	names := base.Names()
	templates := make(map[string][]string, len(names)+len(reg.Categories))
	for _, name := range names {
		tpls, err := base.TemplatesFor(name)
		if err != nil {
			return nil, err
		}
		templates[name] = tpls
	}

	for _, cat := range reg.Categories {
		if _, exists := templates[cat.Name]; !exists {
			names = append(names, cat.Name)
		}
		templates[cat.Name] = cat.Templates
	}

	return catalog.New(names, templates)
}
