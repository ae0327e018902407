package simplifier

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const reportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["summary", "findings", "cautions"],
  "properties": {
    "summary": {"type": "string"},
    "findings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "explanation"],
        "properties": {
          "name": {"type": "string"},
          "value": {"type": "string"},
          "status": {"type": "string"},
          "explanation": {"type": "string"}
        }
      }
    },
    "cautions": {"type": "array", "items": {"type": "string"}}
  }
}`

// SchemaChecker reports how far a decoded model response drifts from the requested
// shape. Drift is informational: normalization tolerates it.
type SchemaChecker struct {
	schema *jsonschema.Schema
}

// NewSchemaChecker compiles the report schema.
func NewSchemaChecker() *SchemaChecker {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("report.json", strings.NewReader(reportSchema)); err != nil {
		panic(err)
	}
	return &SchemaChecker{schema: compiler.MustCompile("report.json")}
}

// Check returns nil when v matches the report schema.
func (c *SchemaChecker) Check(v interface{}) error {
	return c.schema.Validate(v)
}
