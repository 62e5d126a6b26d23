package export

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSchema constrains the parts of an export the aggregation engine
// depends on. Extra fields are allowed so newer exporters stay importable.
const documentSchema = `{
  "type": "object",
  "required": ["schema", "schemaVersion", "profileId", "student", "school", "overview", "units", "skills", "errors", "settings"],
  "properties": {
    "schema": {"const": "progress_export"},
    "schemaVersion": {"type": "string", "minLength": 1},
    "profileId": {"type": "string", "minLength": 1},
    "student": {
      "type": "object",
      "required": ["firstName", "gradeYear", "classGroup"],
      "properties": {
        "firstName": {"type": "string", "minLength": 1},
        "gradeYear": {"type": "integer", "minimum": 1},
        "classGroup": {"type": "string", "minLength": 1}
      }
    },
    "school": {
      "type": "object",
      "required": ["name"],
      "properties": {"name": {"type": "string", "minLength": 1}}
    },
    "overview": {
      "type": "object",
      "required": ["totalSessions", "totalMinutes", "weeklyActiveDays"],
      "properties": {
        "totalSessions": {"type": "integer", "minimum": 0},
        "totalMinutes": {"type": "integer", "minimum": 0},
        "weeklyActiveDays": {"type": "integer", "minimum": 0}
      }
    },
    "units": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["nodeId", "attempts", "bestScore", "passed", "stars"],
        "properties": {
          "nodeId": {"type": "string", "minLength": 1},
          "attempts": {"type": "integer", "minimum": 0},
          "bestScore": {"type": "number", "minimum": 0, "maximum": 1},
          "passed": {"type": "boolean"},
          "stars": {"type": "integer", "minimum": 0, "maximum": 3}
        }
      }
    },
    "skills": {"type": "object"},
    "errors": {
      "type": "object",
      "required": ["byType"],
      "properties": {"byType": {"type": "object"}}
    },
    "settings": {
      "type": "object",
      "required": ["inclusion"],
      "properties": {
        "inclusion": {
          "type": "object",
          "required": ["focusMode", "noTimer", "readingEasy", "reduceMotion"]
        }
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(documentSchema), &parsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://progress_export.json", parsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://progress_export.json")
	})
	return compiledSchema, compileErr
}

// Validate checks raw JSON against the export document schema, then decodes
// it. Documents that do not validate are rejected whole.
func Validate(raw []byte) (*Document, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := getCompiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile export schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	return &doc, nil
}
