package tui

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/apimgr/cwe/src/client/api"
	"github.com/apimgr/cwe/src/client/report"
)

const weaknessBody = `{"Weaknesses":[{"ID":"79","Name":"Improper Neutralization of Input During Web Page Generation","Abstraction":"Base","Structure":"Simple","Status":"Stable","Description":"The product does not neutralize input."}]}`

func newTestModel(t *testing.T, handler http.HandlerFunc) (model, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, 5, nil)
	renderer := report.New(io.Discard, report.Options{Width: 80})
	return initialModel(context.Background(), client, renderer, nil), &hits
}

// Tests for parseQuery

func TestParseQuery(t *testing.T) {
	tests := []struct {
		in      string
		want    query
		wantErr bool
	}{
		{"79", query{kindWeakness, "79"}, false},
		{" CWE-79 ", query{kindWeakness, "79"}, false},
		{"view:1000", query{kindView, "1000"}, false},
		{"Category: 1347", query{kindCategory, "1347"}, false},
		{"weakness:89", query{kindWeakness, "89"}, false},
		{"foo:1", query{}, true},
		{"abc", query{}, true},
		{"view:", query{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseQuery(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseQuery(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseQuery(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// Tests for initialModel

func TestInitialModel(t *testing.T) {
	m := initialModel(context.Background(), &api.Client{}, report.New(io.Discard, report.Options{}), nil)

	if !m.input.Focused() {
		t.Error("input should be focused")
	}
	if m.loading {
		t.Error("loading should be false initially")
	}
	if m.logger == nil {
		t.Error("logger should default to a discard logger")
	}
	if m.Init() == nil {
		t.Error("Init() should start the cursor blink")
	}
}

// Tests for model.Update

func TestModelUpdateCtrlCQuits(t *testing.T) {
	m := initialModel(context.Background(), &api.Client{}, nil, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("Update(ctrl+c) should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Update(ctrl+c) should quit")
	}
}

func TestModelUpdateLettersDoNotQuit(t *testing.T) {
	m := initialModel(context.Background(), &api.Client{}, nil, nil)

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if got := newModel.(model).input.Value(); got != "q" {
		t.Errorf("input = %q, want %q", got, "q")
	}
}

func TestModelUpdateEscClearsThenQuits(t *testing.T) {
	m := initialModel(context.Background(), &api.Client{}, nil, nil)
	m.input.SetValue("79")
	m.content = "something"

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated := newModel.(model)
	if updated.input.Value() != "" {
		t.Errorf("input = %q, want empty after Esc", updated.input.Value())
	}
	if updated.content != "" {
		t.Error("content should be cleared after Esc")
	}
	if cmd != nil {
		t.Error("first Esc should not quit")
	}

	_, cmd = updated.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Esc on empty input should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Esc on empty input should quit")
	}
}

func TestModelUpdateEnterWithoutQuery(t *testing.T) {
	m, hits := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {})

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if newModel.(model).loading {
		t.Error("loading should stay false for empty input")
	}
	if cmd != nil {
		t.Error("Enter on empty input should not return a command")
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Errorf("requests = %d, want 0", *hits)
	}
}

func TestModelUpdateEnterInvalidQuery(t *testing.T) {
	m, hits := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {})
	m.input.SetValue("nope")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated := newModel.(model)
	if cmd != nil {
		t.Error("invalid input should not start a lookup")
	}
	var validationErr *api.ValidationError
	if !errors.As(updated.err, &validationErr) {
		t.Errorf("err = %v, want *api.ValidationError", updated.err)
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Errorf("requests = %d, want 0", *hits)
	}
}

func TestModelLookupWeakness(t *testing.T) {
	var path string
	m, hits := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(weaknessBody))
	})
	m.input.SetValue("CWE-79")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated := newModel.(model)
	if !updated.loading {
		t.Error("loading should be true after Enter")
	}
	if cmd == nil {
		t.Fatal("Update(Enter) should return a lookup command")
	}

	msg, ok := cmd().(lookupMsg)
	if !ok {
		t.Fatalf("lookup returned %T, want lookupMsg", msg)
	}
	if msg.err != nil {
		t.Fatalf("lookup error = %v", msg.err)
	}
	if path != "/cwe/weakness/79" {
		t.Errorf("path = %q, want /cwe/weakness/79", path)
	}
	if atomic.LoadInt32(hits) != 1 {
		t.Errorf("requests = %d, want 1", *hits)
	}
	if !strings.Contains(msg.content, "CWE-79") {
		t.Errorf("content should contain the rendered entry, got %q", msg.content)
	}

	newModel, _ = updated.Update(msg)
	updated = newModel.(model)
	if updated.loading {
		t.Error("loading should be false after the result arrives")
	}
	if !strings.Contains(updated.View(), "Improper Neutralization") {
		t.Error("View() should show the rendered entry")
	}
}

func TestModelLookupKinds(t *testing.T) {
	tests := []struct {
		input string
		path  string
		body  string
	}{
		{"view:1000", "/cwe/view/1000", `{"Views":[{"ID":"1000","Name":"Research Concepts","Type":"Graph","Status":"Draft","Objective":"Research view."}]}`},
		{"category:1347", "/cwe/category/1347", `{"Categories":[{"ID":"1347","Name":"OWASP Top Ten 2021 Category A03:2021 - Injection","Status":"Stable","Summary":"Injection."}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var path string
			m, _ := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				w.Write([]byte(tt.body))
			})
			q, err := parseQuery(tt.input)
			if err != nil {
				t.Fatal(err)
			}

			msg := m.lookup(q)().(lookupMsg)
			if msg.err != nil {
				t.Fatalf("lookup error = %v", msg.err)
			}
			if path != tt.path {
				t.Errorf("path = %q, want %q", path, tt.path)
			}
		})
	}
}

func TestModelLookupNotFound(t *testing.T) {
	m, _ := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	msg := m.lookup(query{kind: kindWeakness, id: "999999"})().(lookupMsg)
	if !api.IsNotFound(msg.err) {
		t.Fatalf("err = %v, want a 404 APIError", msg.err)
	}

	newModel, _ := m.Update(msg)
	if !strings.Contains(newModel.(model).View(), "No weakness entry CWE-999999") {
		t.Errorf("View() should report the missing entry, got %q", newModel.(model).View())
	}
}

func TestModelLookupUnreachable(t *testing.T) {
	m, _ := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {})
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	m.client = api.NewClient(server.URL, 5, nil)

	msg := m.lookup(query{kind: kindWeakness, id: "79"})().(lookupMsg)
	if !api.IsTransport(msg.err) {
		t.Fatalf("err = %v, want a transport error", msg.err)
	}

	newModel, _ := m.Update(msg)
	if got := newModel.(model).renderContent(); !strings.Contains(got, "Cannot reach "+server.URL) {
		t.Errorf("renderContent() = %q, want the unreachable server named", got)
	}
}

func TestModelUpdateWindowSize(t *testing.T) {
	m := initialModel(context.Background(), &api.Client{}, nil, nil)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	updated := newModel.(model)
	if !updated.ready {
		t.Error("ready should be true after WindowSizeMsg")
	}
	if updated.viewport.Width != 100 {
		t.Errorf("viewport.Width = %d, want 100", updated.viewport.Width)
	}
	if updated.viewport.Height != 40-chromeHeight {
		t.Errorf("viewport.Height = %d, want %d", updated.viewport.Height, 40-chromeHeight)
	}
}

func TestModelViewLoading(t *testing.T) {
	m := initialModel(context.Background(), &api.Client{}, nil, nil)
	m.loading = true

	if !strings.Contains(m.View(), "Loading...") {
		t.Error("View() should show the loading state")
	}
}
