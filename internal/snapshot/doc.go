// Package snapshot serializes parse results into a stable JSON export
// format and validates exported files.
//
// The export format:
//
//	{
//	  "schema_version": 1,
//	  "source": "TODO.md",
//	  "generated_at": "2024-01-01T00:00:00Z",
//	  "total_open": 3,
//	  "total_completed": 1,
//	  "groups": [
//	    {
//	      "heading": "Backlog",
//	      "heading_line": 0,
//	      "open_count": 3,
//	      "completed_count": 1,
//	      "open": [
//	        {
//	          "text": "Ship the release",
//	          "line": 2,
//	          "completed": false,
//	          "children": [
//	            {"text": "Tag the commit", "line": 3, "completed": false}
//	          ]
//	        }
//	      ],
//	      "completed": [
//	        {"text": "Write changelog", "line": 6, "completed": true}
//	      ]
//	    }
//	  ]
//	}
//
// Line numbers are zero-based positions in the source document. A
// heading_line of -1 marks the synthetic group for tasks above the
// first heading.
//
// # Validation
//
// The package supports two validation modes:
//
// 1. JSON Schema validation against the bundled schema:
//   - Full validation against JSON Schema draft-2020-12
//   - Supports: type checking, required fields, const, min/max,
//     additionalProperties, recursive task nesting
//
// 2. Minimal fallback validation (when the bundled schema fails to
// compile):
//   - Basic structural checks (schema_version, source, groups presence)
//   - Group and task field validation (heading, heading_line, text, line)
//
// # File Format
//
// When writing snapshot files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Stable key ordering (via JSON marshaling)
package snapshot
