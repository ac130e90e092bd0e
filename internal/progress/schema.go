package progress

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const progressSchemaURL = "schema://tutorial_progress.json"

const progressSchemaJSON = `{
  "type": "object",
  "required": ["flowId", "currentStepIndex", "completedSteps", "startedAt", "lastAccessed"],
  "properties": {
    "flowId": {"type": "string", "minLength": 1},
    "currentStepIndex": {"type": "integer", "minimum": 0},
    "completedSteps": {"type": "array", "items": {"type": "string"}},
    "startedAt": {"type": "string"},
    "lastAccessed": {"type": "string"}
  }
}`

var progressSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal([]byte(progressSchemaJSON), &def); err != nil {
		return nil, fmt.Errorf("parse progress schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(progressSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(progressSchemaURL)
})

// validateProgress checks raw against the progress record schema.
func validateProgress(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := progressSchema()
	if err != nil {
		return fmt.Errorf("compile progress schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
