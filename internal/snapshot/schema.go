package snapshot

import (
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// snapshotSchema is the embedded snapshot schema JSON.
const snapshotSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Tickdown Snapshot",
  "type": "object",
  "additionalProperties": false,
  "required": ["schema_version", "source", "total_open", "total_completed", "groups"],
  "properties": {
    "schema_version": { "type": "integer", "const": 1 },
    "source": { "type": "string", "minLength": 1 },
    "generated_at": { "type": "string", "format": "date-time" },
    "total_open": { "type": "integer", "minimum": 0 },
    "total_completed": { "type": "integer", "minimum": 0 },
    "groups": {
      "type": "array",
      "items": { "$ref": "#/$defs/group" }
    }
  },
  "$defs": {
    "group": {
      "type": "object",
      "additionalProperties": false,
      "required": ["heading", "heading_line", "open_count", "completed_count"],
      "properties": {
        "heading": { "type": "string" },
        "heading_line": { "type": "integer", "minimum": -1 },
        "open_count": { "type": "integer", "minimum": 0 },
        "completed_count": { "type": "integer", "minimum": 0 },
        "open": { "type": "array", "items": { "$ref": "#/$defs/task" } },
        "completed": { "type": "array", "items": { "$ref": "#/$defs/task" } }
      }
    },
    "task": {
      "type": "object",
      "additionalProperties": false,
      "required": ["text", "line", "completed"],
      "properties": {
        "text": { "type": "string", "minLength": 1 },
        "line": { "type": "integer", "minimum": 0 },
        "completed": { "type": "boolean" },
        "children": { "type": "array", "items": { "$ref": "#/$defs/task" } }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// bundledSchema compiles the embedded schema on first use and caches it.
func bundledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource("snapshot.schema.json", strings.NewReader(snapshotSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("snapshot.schema.json")
	})
	return compiledSchema, schemaErr
}

// Schema returns the embedded snapshot schema JSON content, for callers
// that want to validate exports with external tools.
func Schema() []byte {
	return []byte(snapshotSchema)
}
