// pkg/registry/schema.go
package registry

// CategoryRegistry is the on-disk registry of extra scan categories. It
// extends or overrides the built-in catalog without a redeploy.
type CategoryRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Categories  []Category `json:"categories"`
}

type Category struct {
	Name      string   `json:"name"`
	Templates []string `json:"templates"`
	Tags      []string `json:"tags"`
}

// registrySchema validates a registry document before it is merged into the
// catalog. Every template must carry the city placeholder.
var registrySchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"version": map[string]interface{}{
			"type": "string",
		},
		"lastUpdated": map[string]interface{}{
			"type": "string",
		},
		"categories": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":      "string",
						"minLength": 1,
					},
					"templates": map[string]interface{}{
						"type":     "array",
						"minItems": 1,
						"items": map[string]interface{}{
							"type":      "string",
							"minLength": 1,
						},
					},
					"tags": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "string",
						},
					},
				},
				"required": []interface{}{"name", "templates"},
			},
		},
	},
	"required": []interface{}{"version", "categories"},
}
