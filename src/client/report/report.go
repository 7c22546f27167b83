// Package report writes API results as pretty JSON or as text rendered
// from named templates.
package report

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// templateExt is appended to a report name to find its template.
const templateExt = ".tmpl"

// ErrTemplateNotFound is returned in human mode when no template matches
// the report name.
var ErrTemplateNotFound = errors.New("template not found")

// RenderError is returned when a template cannot be executed against the
// value bound to it.
type RenderError struct {
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error in %s: %v", e.Template, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Options configures human output.
type Options struct {
	// TemplateDir holds *.tmpl files that replace or extend the built-in set.
	TemplateDir string
	// Color enables lipgloss styling in templates.
	Color bool
	// ForceColor styles output even when the writer is not a terminal.
	ForceColor bool
	// Width is the wrap width for long text; 0 means 80.
	Width  int
	Logger *slog.Logger
}

// Reporter writes results to a single output stream.
type Reporter struct {
	out    io.Writer
	opts   Options
	logger *slog.Logger

	once      sync.Once
	templates *template.Template
	loadErr   error
}

// New creates a Reporter writing to out.
func New(out io.Writer, opts Options) *Reporter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	return &Reporter{
		out:    out,
		opts:   opts,
		logger: logger.With("component", "report"),
	}
}

// Report writes value in the requested format. name selects the template
// used for human output, e.g. "cwe_info".
func (r *Reporter) Report(format Format, name string, value any) error {
	switch format {
	case FormatJSON:
		return r.JSON(value)
	case FormatHuman:
		return r.Human(name, value)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// JSON writes value with two-space indentation followed by a newline.
func (r *Reporter) JSON(value any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Human renders value through the template registered under name and
// prints the result.
func (r *Reporter) Human(name string, value any) error {
	rendered, err := r.Render(name, value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, strings.TrimRight(rendered, "\n"))
	return err
}

// Render executes the template registered under name against value and
// returns the text.
func (r *Reporter) Render(name string, value any) (string, error) {
	set, err := r.load()
	if err != nil {
		return "", err
	}

	templateName := name + templateExt
	r.logger.Debug("rendering template", "template", templateName)

	tmpl := set.Lookup(templateName)
	if tmpl == nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
	}

	data, err := toContext(value)
	if err != nil {
		return "", &RenderError{Template: templateName, Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", &RenderError{Template: templateName, Err: err}
	}
	return buf.String(), nil
}

// load parses the embedded templates and then the override directory, so
// a file there with a built-in name replaces it.
func (r *Reporter) load() (*template.Template, error) {
	r.once.Do(func() {
		set := template.New("report").
			Option("missingkey=error").
			Funcs(newStyler(r.out, r.opts).funcs())

		set, err := set.ParseFS(embedded, "templates/*"+templateExt)
		if err != nil {
			r.loadErr = fmt.Errorf("parse built-in templates: %w", err)
			return
		}

		if dir := r.opts.TemplateDir; dir != "" {
			matches, err := filepath.Glob(filepath.Join(dir, "*"+templateExt))
			if err != nil {
				r.loadErr = fmt.Errorf("list templates in %s: %w", dir, err)
				return
			}
			for _, path := range matches {
				if err := parseFile(set, path); err != nil {
					r.loadErr = err
					return
				}
			}
			r.logger.Debug("loaded template overrides", "dir", dir, "count", len(matches))
		}

		r.templates = set
	})
	return r.templates, r.loadErr
}

func parseFile(set *template.Template, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	if _, err := set.New(filepath.Base(path)).Parse(string(content)); err != nil {
		return fmt.Errorf("parse template %s: %w", path, err)
	}
	return nil
}

// toContext converts a typed record into its generic JSON form so that
// templates address fields by their wire names.
func toContext(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
