package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type record struct {
	ID   string `json:"ID"`
	Name string `json:"Name"`
	Tags []string
}

// Tests for ParseFormat

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{" human ", FormatHuman, false},
		{"table", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Tests for JSON output

func TestJSONPrettyPrint(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{})

	value := record{ID: "79", Name: "Cross-site <Scripting>", Tags: []string{"a"}}
	if err := r.Report(FormatJSON, "ignored", value); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	want := "{\n  \"ID\": \"79\",\n  \"Name\": \"Cross-site <Scripting>\",\n  \"Tags\": [\n    \"a\"\n  ]\n}\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}

	var decoded record
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ID != value.ID || decoded.Name != value.Name {
		t.Errorf("decoded = %+v, want %+v", decoded, value)
	}
}

func TestJSONUnsupportedValue(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{})

	if err := r.JSON(make(chan int)); err == nil {
		t.Error("JSON() should fail for a channel")
	}
}

func TestReportUnknownFormat(t *testing.T) {
	r := New(&bytes.Buffer{}, Options{})
	if err := r.Report(Format("xml"), "cwe_info", nil); err == nil {
		t.Error("Report() should fail for an unknown format")
	}
}

// Tests for human output

func TestHumanTemplateNotFound(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{})

	err := r.Report(FormatHuman, "no_such_command", record{ID: "1"})
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("error = %v, want ErrTemplateNotFound", err)
	}
	if !strings.Contains(err.Error(), "no_such_command.tmpl") {
		t.Errorf("error = %q, should name the template", err.Error())
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}

func TestHumanMissingFieldIsRenderError(t *testing.T) {
	r := New(&bytes.Buffer{}, Options{})

	value := map[string]any{
		"Weaknesses": []any{map[string]any{"Name": "no id"}},
	}
	err := r.Human("weakness_info", value)

	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("error = %v, want *RenderError", err)
	}
	if renderErr.Template != "weakness_info.tmpl" {
		t.Errorf("Template = %q, want weakness_info.tmpl", renderErr.Template)
	}
}

func TestHumanCWEInfo(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{})

	value := map[string]any{
		"79": map[string]any{"ID": "79", "Type": "base_weakness"},
		"74": map[string]any{"ID": "74", "Type": "class_weakness"},
	}
	if err := r.Human("cwe_info", value); err != nil {
		t.Fatalf("Human() error = %v", err)
	}

	want := "CWE-74 class_weakness\nCWE-79 base_weakness\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestHumanParents(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{})

	value := []map[string]any{
		{"Type": "class", "ID": "74", "ViewID": "1000", "Primary_Parent": true},
		{"Type": "category", "ID": "1347", "ViewID": "1344", "Primary_Parent": false},
	}
	if err := r.Human("cwe_parents", value); err != nil {
		t.Fatalf("Human() error = %v", err)
	}

	want := "CWE-74 class view 1000 primary\nCWE-1347 category view 1344\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestHumanEmptyChildren(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{})

	if err := r.Human("cwe_children", []any{}); err != nil {
		t.Fatalf("Human() error = %v", err)
	}
	if buf.String() != "no children\n" {
		t.Errorf("output = %q, want %q", buf.String(), "no children\n")
	}
}

func TestHumanAncestorTree(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{})

	tree := `[{"Data":{"Type":"base","ID":"79","ViewID":"1000","Primary_Parent":true},"Parents":[
		{"Data":{"Type":"class","ID":"74","ViewID":"1000","Primary_Parent":true},"Parents":[
			{"Data":{"Type":"pillar","ID":"707","ViewID":"1000","Primary_Parent":true},"Parents":null}]}]}]`
	var value any
	if err := json.Unmarshal([]byte(tree), &value); err != nil {
		t.Fatal(err)
	}

	if err := r.Human("cwe_ancestors", value); err != nil {
		t.Fatalf("Human() error = %v", err)
	}

	want := "CWE-79 base view 1000 primary\n" +
		"  CWE-74 class view 1000 primary\n" +
		"    CWE-707 pillar view 1000 primary\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestHumanVersion(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{})

	value := map[string]any{"cli_version": "1.0.0"}
	if err := r.Human("version", value); err != nil {
		t.Fatalf("Human() error = %v", err)
	}
	if buf.String() != "CLI version:  1.0.0\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestHumanWeaknessWraps(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{Width: 40})

	value := map[string]any{
		"Weaknesses": []any{map[string]any{
			"ID":          "79",
			"Name":        "XSS",
			"Abstraction": "Base",
			"Description": strings.Repeat("word ", 30),
			"RelatedWeaknesses": []any{
				map[string]any{"Nature": "ChildOf", "CweID": "74", "ViewID": "1000", "Ordinal": "Primary"},
			},
		}},
	}
	if err := r.Human("weakness_info", value); err != nil {
		t.Fatalf("Human() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "CWE-79: XSS\nAbstraction: Base\n") {
		t.Errorf("output should start with heading and abstraction, got %q", out)
	}
	if !strings.Contains(out, "ChildOf CWE-74 (view 1000) Primary") {
		t.Errorf("output should list related weaknesses, got %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 40 {
			t.Errorf("line exceeds wrap width: %q", line)
		}
	}
}

func TestHumanWithoutColorHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{Color: false, ForceColor: true})

	if err := r.Human("version", map[string]any{"cli_version": "1.0.0"}); err != nil {
		t.Fatalf("Human() error = %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("output contains escape codes: %q", buf.String())
	}
}

func TestHumanForcedColor(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, Options{Color: true, ForceColor: true})

	if err := r.Human("version", map[string]any{"cli_version": "1.0.0"}); err != nil {
		t.Fatalf("Human() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("output should contain escape codes: %q", buf.String())
	}
}

// Tests for template overrides

func TestTemplateDirOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cwe_info.tmpl"), []byte(`{{range .}}{{.ID}};{{end}}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "extra.tmpl"), []byte(`extra {{.ID}}`), 0600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	r := New(&buf, Options{TemplateDir: dir})

	value := map[string]any{"79": map[string]any{"ID": "79", "Type": "base_weakness"}}
	if err := r.Human("cwe_info", value); err != nil {
		t.Fatalf("Human() error = %v", err)
	}
	if buf.String() != "79;\n" {
		t.Errorf("override output = %q, want %q", buf.String(), "79;\n")
	}

	got, err := r.Render("extra", record{ID: "5"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "extra 5" {
		t.Errorf("Render() = %q, want %q", got, "extra 5")
	}
}

func TestTemplateDirParseError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.tmpl"), []byte(`{{if}}`), 0600); err != nil {
		t.Fatal(err)
	}

	r := New(&bytes.Buffer{}, Options{TemplateDir: dir})
	if _, err := r.Render("cwe_info", map[string]any{}); err == nil {
		t.Error("Render() should fail when an override does not parse")
	}
}

// Tests for template helpers

func TestIndent(t *testing.T) {
	got := indent(2, "a\n\nb")
	if got != "  a\n\n  b" {
		t.Errorf("indent() = %q", got)
	}
}

func TestJoin(t *testing.T) {
	if got := join(", ", []any{"a", "b"}); got != "a, b" {
		t.Errorf("join() = %q", got)
	}
	if got := join(", ", nil); got != "" {
		t.Errorf("join(nil) = %q", got)
	}
	if got := join(", ", "x"); got != "x" {
		t.Errorf("join(string) = %q", got)
	}
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "two")
	if err != nil {
		t.Fatalf("dict() error = %v", err)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("dict() = %v", m)
	}
	if _, err := dict("a"); err == nil {
		t.Error("dict() should reject odd arguments")
	}
	if _, err := dict(1, 2); err == nil {
		t.Error("dict() should reject non-string keys")
	}
}
