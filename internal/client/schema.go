package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildBatchResultSchema returns a JSON-Schema (draft 2020-12 subset) for the
// extraction service's batch payload, as a generic map. The service is not
// versioned; validating here keeps a drifting backend from leaking malformed
// payloads into the projector.
func BuildBatchResultSchema() map[string]any {
	item := map[string]any{
		"type":     "object",
		"required": []string{"filename", "status"},
		"properties": map[string]any{
			"filename": map[string]any{"type": "string", "minLength": 1},
			"status":   map[string]any{"type": "string", "enum": []string{"success", "error"}},
			"data": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"error": map[string]any{"type": "string"},
		},
	}

	return map[string]any{
		"type":     "object",
		"required": []string{"total_files", "processed_files", "failed_files", "results"},
		"properties": map[string]any{
			"timestamp":       map[string]any{"type": "string"},
			"total_files":     countProp(),
			"processed_files": countProp(),
			"failed_files":    countProp(),
			"results":         map[string]any{"type": "array", "items": item},
			"download_links": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"excel": map[string]any{"type": "string"},
					"zip":   map[string]any{"type": "string"},
				},
			},
			"renamed_files": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"file_info": map[string]any{"type": "object"},
		},
	}
}

func countProp() map[string]any {
	return map[string]any{"type": "integer", "minimum": 0}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
