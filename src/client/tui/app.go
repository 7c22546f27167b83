// Package tui implements the interactive CWE browser.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apimgr/cwe/src/client/api"
	"github.com/apimgr/cwe/src/client/report"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(report.Purple).
			Bold(true).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(report.Comment).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(report.Comment)

	errorStyle = lipgloss.NewStyle().
			Foreground(report.Red)
)

// chromeHeight is the number of lines used by the title, input box and
// help line around the viewport.
const chromeHeight = 7

// Renderer turns a record into text with a named template.
type Renderer interface {
	Render(name string, value any) (string, error)
}

// Query kinds accepted in the input box.
const (
	kindWeakness = "weakness"
	kindView     = "view"
	kindCategory = "category"
)

// scrollKeys leaves letter keys to the input box.
var scrollKeys = viewport.KeyMap{
	PageDown: key.NewBinding(key.WithKeys("pgdown")),
	PageUp:   key.NewBinding(key.WithKeys("pgup")),
	Up:       key.NewBinding(key.WithKeys("up")),
	Down:     key.NewBinding(key.WithKeys("down")),
}

type query struct {
	kind string
	id   string
}

// parseQuery accepts "79", "CWE-79", "view:1000" or "category:1347".
func parseQuery(s string) (query, error) {
	s = strings.TrimSpace(s)
	kind, id := kindWeakness, s
	if prefix, rest, ok := strings.Cut(s, ":"); ok {
		kind, id = strings.ToLower(strings.TrimSpace(prefix)), rest
	}
	switch kind {
	case kindWeakness, kindView, kindCategory:
	default:
		return query{}, fmt.Errorf("unknown entry kind %q (use view:ID or category:ID)", kind)
	}
	normalized, err := api.NormalizeID(id)
	if err != nil {
		return query{}, err
	}
	return query{kind: kind, id: normalized}, nil
}

type model struct {
	ctx      context.Context
	client   *api.Client
	renderer Renderer
	logger   *slog.Logger

	input    textinput.Model
	viewport viewport.Model
	ready    bool

	last    query
	content string
	err     error
	loading bool
	width   int
	height  int
}

type lookupMsg struct {
	query   query
	content string
	err     error
}

func initialModel(ctx context.Context, client *api.Client, renderer Renderer, logger *slog.Logger) model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ti := textinput.New()
	ti.Placeholder = "CWE id, view:ID or category:ID"
	ti.Focus()
	ti.Width = 50

	vp := viewport.New(80, 18)
	vp.KeyMap = scrollKeys

	return model{
		ctx:      ctx,
		client:   client,
		renderer: renderer,
		logger:   logger.With("component", "tui"),
		input:    ti,
		viewport: vp,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			if m.input.Value() == "" {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.content = ""
			m.err = nil
			m.viewport.SetContent("")
			return m, nil
		case tea.KeyEnter:
			if strings.TrimSpace(m.input.Value()) == "" {
				return m, nil
			}
			q, err := parseQuery(m.input.Value())
			if err != nil {
				m.err = err
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, m.lookup(q)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.ready = true
		m.viewport.SetContent(m.renderContent())

	case lookupMsg:
		m.loading = false
		m.last = msg.query
		m.content = msg.content
		m.err = msg.err
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// lookup fetches one entry with a single request and renders it with the
// matching info template.
func (m model) lookup(q query) tea.Cmd {
	return func() tea.Msg {
		m.logger.Debug("lookup", "kind", q.kind, "id", q.id)

		var (
			value any
			err   error
		)
		switch q.kind {
		case kindView:
			value, err = m.client.View(m.ctx, q.id)
		case kindCategory:
			value, err = m.client.Category(m.ctx, q.id)
		default:
			value, err = m.client.Weakness(m.ctx, q.id)
		}
		if err != nil {
			return lookupMsg{query: q, err: err}
		}

		content, err := m.renderer.Render(q.kind+"_info", value)
		return lookupMsg{query: q, content: content, err: err}
	}
}

func (m model) renderContent() string {
	if m.err != nil {
		if api.IsNotFound(m.err) {
			return errorStyle.Render(fmt.Sprintf("No %s entry CWE-%s", m.last.kind, m.last.id))
		}
		if api.IsTransport(m.err) {
			return errorStyle.Render(fmt.Sprintf("Cannot reach %s", m.client.BaseURL))
		}
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.content == "" {
		return helpStyle.Render("Type an id and press Enter")
	}
	return m.content
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("CWE"))
	sb.WriteString("\n\n")

	sb.WriteString(inputStyle.Render(m.input.View()))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(helpStyle.Render("Loading..."))
	} else {
		sb.WriteString(m.viewport.View())
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Enter: look up • ↑/↓ PgUp/PgDn: scroll • Esc: clear/quit • Ctrl+C: quit"))

	return sb.String()
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, client *api.Client, renderer Renderer, logger *slog.Logger) error {
	p := tea.NewProgram(initialModel(ctx, client, renderer, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
