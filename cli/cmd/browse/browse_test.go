package browse

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var testEntries = []Entry{
	{Key: "cache", Path: "/var/cache"},
	{Key: "config", Path: "/etc/pathfinder"},
	{Key: "home", Path: "/home/user"},
}

func staticLoader(snap []Entry, err error) Loader {
	return func(context.Context) ([]Entry, error) { return snap, err }
}

func newTestModel() model {
	return newModel(context.Background(), staticLoader(testEntries, nil), testEntries)
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}

	return nm, cmd
}

func typeText(t *testing.T, m model, s string) model {
	t.Helper()

	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func keys(m model) []string {
	var ks []string
	for _, match := range m.matches {
		ks = append(ks, m.entries[match.Index].Key)
	}

	return ks
}

func TestModel_Filter(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"empty_matches_all", "", []string{"cache", "config", "home"}},
		{"prefix", "co", []string{"config"}},
		{"subsequence", "hm", []string{"home"}},
		{"shared", "c", []string{"cache", "config"}},
		{"none", "xyz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := typeText(t, newTestModel(), tt.pattern)

			got := keys(m)
			if len(got) != len(tt.want) {
				t.Fatalf("matches = %q, want %q", got, tt.want)
			}

			for _, w := range tt.want {
				if !strings.Contains(strings.Join(got, " "), w) {
					t.Errorf("matches = %q, want %q", got, tt.want)
				}
			}
		})
	}
}

func TestModel_Navigate(t *testing.T) {
	m := newTestModel()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	if m.cursor != 2 {
		t.Errorf("cursor = %d after moving past the end, want 2", m.cursor)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})

	e, ok := m.selected()
	if !ok || e.Key != "config" {
		t.Errorf("selected() = %v, %v, want config", e, ok)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter returned no command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter did not quit")
	}

	if m.chosen != "/etc/pathfinder" {
		t.Errorf("chosen = %q", m.chosen)
	}
}

func TestModel_Scroll(t *testing.T) {
	m := newTestModel()

	// One visible row.
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: chromeHeight + 1})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.offset != 1 {
		t.Errorf("offset = %d, want 1", m.offset)
	}

	view := m.View()
	if strings.Contains(view, "/var/cache") || !strings.Contains(view, "/etc/pathfinder") {
		t.Errorf("View() shows the wrong rows:\n%s", view)
	}
}

func TestModel_Quit(t *testing.T) {
	m, cmd := update(t, newTestModel(), tea.KeyMsg{Type: tea.KeyEsc})

	if cmd == nil {
		t.Fatal("esc returned no command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc did not quit")
	}

	if m.chosen != "" {
		t.Errorf("chosen = %q, want none", m.chosen)
	}
}

func TestModel_Reload(t *testing.T) {
	fresh := []Entry{{Key: "only", Path: "/only"}}

	m := newModel(context.Background(), staticLoader(fresh, nil), testEntries)
	m = typeText(t, m, "o")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("ctrl+r returned no command")
	}

	// The old snapshot stays until the reload completes.
	if len(m.entries) != len(testEntries) {
		t.Errorf("entries swapped before reload completed")
	}

	msg := cmd()
	if _, ok := msg.(reloadMsg); !ok {
		t.Fatalf("reload command returned %T", msg)
	}

	m, _ = update(t, m, msg)

	if got := keys(m); len(got) != 1 || got[0] != "only" {
		t.Errorf("matches after reload = %q, want [only]", got)
	}

	if !strings.Contains(m.View(), "reloaded 1 paths") {
		t.Errorf("View() missing reload status:\n%s", m.View())
	}
}

func TestModel_ReloadFailureKeepsSnapshot(t *testing.T) {
	boom := errors.New("boom")

	m := newModel(context.Background(), staticLoader(nil, boom), testEntries)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m, _ = update(t, m, cmd())

	if len(m.entries) != len(testEntries) {
		t.Errorf("entries = %d, want previous snapshot", len(m.entries))
	}

	if !errors.Is(m.err, boom) || !strings.Contains(m.View(), "reload failed: boom") {
		t.Errorf("err = %v, view:\n%s", m.err, m.View())
	}
}

func TestRun_LoadError(t *testing.T) {
	boom := errors.New("boom")

	if _, err := Run(context.Background(), staticLoader(nil, boom)); !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}
}
