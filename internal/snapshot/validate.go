package snapshot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationError describes a single field-level validation failure.
type ValidationError struct {
	Path string // JSON path of the failing field, empty for file-level errors
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult aggregates the outcome of validating a snapshot.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool
}

// Validate checks the snapshot against the bundled JSON Schema. If the
// schema cannot be compiled it falls back to minimal structural checks
// and records a warning.
func (f *File) Validate() *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schema, err := bundledSchema()
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("bundled schema unavailable: %v", err))
		f.validateMinimal(result)
		return result
	}

	result.UsedSchema = true

	// Round-trip through JSON so the validator sees plain maps and
	// slices instead of Go structs.
	data, err := json.Marshal(f)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("marshal snapshot for validation: %w", err),
		})
		return result
	}

	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("unmarshal snapshot for validation: %w", err),
		})
		return result
	}

	if err := schema.Validate(obj); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}

	return result
}

// validateMinimal performs minimal validation without JSON Schema.
func (f *File) validateMinimal(result *ValidationResult) {
	if f.SchemaVersion != SchemaVersion {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "schema_version",
			Err:  fmt.Errorf("expected %d, got %d", SchemaVersion, f.SchemaVersion),
		})
	}

	if f.Source == "" {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "source",
			Err:  fmt.Errorf("missing required field"),
		})
	}

	if f.Groups == nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "groups",
			Err:  fmt.Errorf("missing required field"),
		})
		return
	}

	for i := range f.Groups {
		g := &f.Groups[i]
		path := fmt.Sprintf("groups[%d]", i)
		if g.HeadingLine < -1 {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".heading_line",
				Err:  fmt.Errorf("must be -1 or a document line, got %d", g.HeadingLine),
			})
		}
		if g.OpenCount < 0 || g.CompletedCount < 0 {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path,
				Err:  fmt.Errorf("counts must be non-negative"),
			})
		}
		validateTasksMinimal(result, g.Open, path+".open")
		validateTasksMinimal(result, g.Completed, path+".completed")
	}
}

// validateTasksMinimal checks a task list and its nested children.
func validateTasksMinimal(result *ValidationResult, ts []Task, path string) {
	for i := range ts {
		t := &ts[i]
		p := fmt.Sprintf("%s[%d]", path, i)
		if t.Text == "" {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: p + ".text",
				Err:  fmt.Errorf("missing required field"),
			})
		}
		if t.Line < 0 {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: p + ".line",
				Err:  fmt.Errorf("must be non-negative, got %d", t.Line),
			})
		}
		validateTasksMinimal(result, t.Children, p+".children")
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	if err == nil {
		return
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}

	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath converts a JSON pointer ("/groups/0/open/1/text")
// into the dotted path form used in validation errors.
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}
