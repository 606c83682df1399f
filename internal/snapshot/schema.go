package snapshot

import (
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// boardSchema guards against half-written or hand-edited snapshots being
// accepted as board state. A document that fails it is treated the same
// as corrupt JSON: the caller falls back to the seed dataset.
const boardSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["schema_version"],
  "properties": {
    "schema_version": {"type": "integer", "minimum": 1},
    "projects": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "progress", "status"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "progress": {"type": "integer", "minimum": 0, "maximum": 100},
          "status": {"enum": ["in_progress", "completed"]}
        }
      }
    },
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "project_id", "name", "complete"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "project_id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "complete": {"type": "boolean"},
          "assignee_id": {"type": "string"}
        }
      }
    },
    "team_members": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "max_capacity"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "max_capacity": {"type": "integer", "minimum": 1}
        }
      }
    }
  }
}`

var compiledBoardSchema = jsonschema.MustCompileString("board.schema.json", boardSchema)

// validateDocument checks raw snapshot bytes against the board schema.
func validateDocument(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("snapshot: parse document: %w", err)
	}
	if err := compiledBoardSchema.Validate(doc); err != nil {
		return fmt.Errorf("snapshot: validate document: %w", err)
	}
	return nil
}
