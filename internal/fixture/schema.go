package fixture

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://lessonreview/seed.json"

// seedSchema describes a seed document.
const seedSchema = `{
  "type": "object",
  "required": ["course"],
  "additionalProperties": false,
  "properties": {
    "course": {"type": "string", "minLength": 1},
    "outcomes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["code"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string"},
          "code": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "standards": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["code"],
              "properties": {
                "code": {"type": "string", "minLength": 1},
                "description": {"type": "string"}
              }
            }
          }
        }
      }
    },
    "lessons": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "status": {"enum": ["draft", "published"]},
          "coverage": {"type": "array", "items": {"type": "string"}},
          "estimated_minutes": {"type": "integer", "minimum": 0}
        }
      }
    },
    "learners": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["student"],
        "additionalProperties": false,
        "properties": {
          "student": {"type": "string", "minLength": 1},
          "sessions": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["lesson"],
              "additionalProperties": false,
              "properties": {
                "id": {"type": "string"},
                "lesson": {"type": "string", "minLength": 1},
                "status": {"enum": ["started", "completed", "abandoned"]},
                "completed_at": {"type": "string"},
                "completed_days_ago": {"type": "integer", "minimum": 0}
              }
            }
          },
          "due": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["outcome"],
              "additionalProperties": false,
              "properties": {
                "outcome": {"type": "string", "minLength": 1},
                "due_at": {"type": "string"},
                "due_in_days": {"type": "integer"}
              }
            }
          },
          "mastery": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["outcome", "score"],
              "additionalProperties": false,
              "properties": {
                "outcome": {"type": "string", "minLength": 1},
                "standard": {"type": "string"},
                "score": {"type": "number", "minimum": 0, "maximum": 1}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func seedValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(seedSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse seed schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validate checks a decoded JSON value against the seed schema.
func validate(doc any) error {
	v, err := seedValidator()
	if err != nil {
		return err
	}
	if err := v.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
