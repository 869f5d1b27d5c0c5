// internal/scan/models.go
package scan

// Input is the generate-stream request body.
type Input struct {
	Category string `json:"category"`
	City     string `json:"city"`
}

// requestSchema is the JSON schema the request body is validated against
// before the catalog lookup.
var requestSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"category": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"city": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
	},
	"required": []interface{}{"category", "city"},
}
