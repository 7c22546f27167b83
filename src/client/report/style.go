package report

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Dracula palette, shared with the TUI.
var (
	Comment = lipgloss.Color("#6272a4")
	Cyan    = lipgloss.Color("#8be9fd")
	Green   = lipgloss.Color("#50fa7b")
	Orange  = lipgloss.Color("#ffb86c")
	Purple  = lipgloss.Color("#bd93f9")
	Red     = lipgloss.Color("#ff5555")
)

// styler provides the template helpers. With color disabled every style
// helper returns its input unchanged.
type styler struct {
	color   bool
	width   int
	heading lipgloss.Style
	label   lipgloss.Style
	dim     lipgloss.Style
	accent  lipgloss.Style
}

func newStyler(out io.Writer, opts Options) *styler {
	r := lipgloss.NewRenderer(out)
	if opts.ForceColor {
		r.SetColorProfile(termenv.ANSI256)
	}
	return &styler{
		color:   opts.Color,
		width:   opts.Width,
		heading: r.NewStyle().Foreground(Purple).Bold(true),
		label:   r.NewStyle().Foreground(Cyan),
		dim:     r.NewStyle().Foreground(Comment),
		accent:  r.NewStyle().Foreground(Orange),
	}
}

func (s *styler) render(style lipgloss.Style, v any) string {
	text := fmt.Sprint(v)
	if !s.color {
		return text
	}
	return style.Render(text)
}

func (s *styler) funcs() template.FuncMap {
	return template.FuncMap{
		"heading": func(v any) string { return s.render(s.heading, v) },
		"label":   func(v any) string { return s.render(s.label, v) },
		"dim":     func(v any) string { return s.render(s.dim, v) },
		"accent":  func(v any) string { return s.render(s.accent, v) },
		"wrap":    s.wrap,
		"indent":  indent,
		"join":    join,
		"add":     func(a, b int) int { return a + b },
		"get":     get,
		"dict":    dict,
		"pad":     func(depth int) string { return strings.Repeat("  ", depth) },
	}
}

// wrap word-wraps text to the configured width minus margin columns.
func (s *styler) wrap(margin int, v any) string {
	limit := s.width - margin
	if limit < 20 {
		limit = 20
	}
	return ansi.Wordwrap(strings.TrimSpace(fmt.Sprint(v)), limit, "")
}

// indent prefixes every line of v with n spaces.
func indent(n int, v any) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(fmt.Sprint(v), "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

// join concatenates a list value with sep.
func join(sep string, v any) string {
	items, ok := v.([]any)
	if !ok {
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprint(item))
	}
	return strings.Join(parts, sep)
}

// get looks up an optional key. Direct field access in templates fails on
// a missing key, so optional fields go through get.
func get(m any, key string) any {
	obj, ok := m.(map[string]any)
	if !ok {
		return nil
	}
	return obj[key]
}

// dict builds a map from alternating keys and values, for passing several
// values to a nested template.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
