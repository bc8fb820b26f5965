package output

import (
	"strings"
	"testing"
)

type payload struct {
	Source    string  `json:"source"`
	TotalOpen int     `json:"total_open"`
	Groups    []group `json:"groups"`
}

type group struct {
	Heading   string `json:"heading"`
	OpenCount int    `json:"open_count"`
}

func samplePayload() payload {
	return payload{
		Source:    "TODO.md",
		TotalOpen: 3,
		Groups: []group{
			{Heading: "Backlog", OpenCount: 2},
			{Heading: "Done <soon>", OpenCount: 1},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{" JSON ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
		{"ndjson", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsStructured(t *testing.T) {
	if IsStructured(FormatText) {
		t.Error("text should not be structured")
	}
	if !IsStructured(FormatJSON) || !IsStructured(FormatYAML) {
		t.Error("json and yaml should be structured")
	}
}

func TestPrintJSON(t *testing.T) {
	var sb strings.Builder
	p := &Printer{W: &sb, Format: FormatJSON}

	if err := p.Print(samplePayload()); err != nil {
		t.Fatalf("Print JSON failed: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "\"source\": \"TODO.md\"") {
		t.Fatalf("unexpected json output: %s", out)
	}
	if !strings.Contains(out, "Done <soon>") {
		t.Fatalf("HTML escaping should be off, got: %s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("missing trailing newline")
	}
}

func TestPrintJSONWithQuery(t *testing.T) {
	var sb strings.Builder
	p := &Printer{W: &sb, Format: FormatJSON, Query: ".groups[0].heading"}

	if err := p.Print(samplePayload()); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if got := strings.TrimSpace(sb.String()); got != "\"Backlog\"" {
		t.Errorf("query output: got %q, want %q", got, "\"Backlog\"")
	}
}

func TestPrintJSONQueryMultipleResults(t *testing.T) {
	var sb strings.Builder
	p := &Printer{W: &sb, Format: FormatJSON, Query: ".groups[].open_count"}

	if err := p.Print(samplePayload()); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if got := sb.String(); got != "2\n1\n" {
		t.Errorf("query output: got %q, want %q", got, "2\n1\n")
	}
}

func TestPrintYAML(t *testing.T) {
	var sb strings.Builder
	p := &Printer{W: &sb, Format: FormatYAML}

	if err := p.Print(samplePayload()); err != nil {
		t.Fatalf("Print YAML failed: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "source: TODO.md") {
		t.Fatalf("unexpected yaml output: %s", out)
	}
	if !strings.Contains(out, "  - heading: Backlog") {
		t.Fatalf("expected 2-space indented sequence, got: %s", out)
	}
}

func TestPrintYAMLWithQuery(t *testing.T) {
	var sb strings.Builder
	p := &Printer{W: &sb, Format: FormatYAML, Query: ".groups[].heading"}

	if err := p.Print(samplePayload()); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "Backlog") || !strings.Contains(out, "Done <soon>") {
		t.Fatalf("query results missing: %s", out)
	}
	// Two results become two YAML documents.
	if !strings.Contains(out, "---") {
		t.Fatalf("expected a document separator, got: %s", out)
	}
}

func TestPrintTextIsNotGeneric(t *testing.T) {
	p := &Printer{W: &strings.Builder{}, Format: FormatText}
	if err := p.Print(samplePayload()); err == nil {
		t.Fatal("expected error for text format")
	}
}

func TestQueryAppliesToStructValues(t *testing.T) {
	// gojq rejects raw structs; the printer must hand it plain maps.
	var sb strings.Builder
	p := &Printer{W: &sb, Format: FormatJSON, Query: ".total_open"}

	if err := p.Print(samplePayload()); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if got := strings.TrimSpace(sb.String()); got != "3" {
		t.Errorf("query output: got %q, want %q", got, "3")
	}
}

func TestInvalidQuery(t *testing.T) {
	p := &Printer{W: &strings.Builder{}, Format: FormatJSON, Query: ".["}
	err := p.Print(samplePayload())
	if err == nil {
		t.Fatal("expected error for malformed query")
	}
	if !strings.Contains(err.Error(), "invalid --query") {
		t.Errorf("error should name the flag, got: %v", err)
	}
}

func TestQueryRuntimeError(t *testing.T) {
	p := &Printer{W: &strings.Builder{}, Format: FormatJSON, Query: ".source | .nested"}
	err := p.Print(samplePayload())
	if err == nil {
		t.Fatal("expected error for indexing into a string")
	}
	if !strings.Contains(err.Error(), "query error") {
		t.Errorf("unexpected error: %v", err)
	}
}
