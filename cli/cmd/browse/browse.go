// Package browse implements an interactive, fuzzy-filtered view of a table of
// named paths.
package browse

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/pathfinder/log"
)

// Entry is one named path.
type Entry struct {
	Key  string
	Path string
}

// Loader returns a new snapshot of the table.
type Loader func(context.Context) ([]Entry, error)

// entries implements [fuzzy.Source] over entry keys.
type entries []Entry

func (e entries) String(i int) string { return e[i].Key }

func (e entries) Len() int { return len(e) }

const (
	prompt        = "➜ "
	defaultWidth  = 80
	defaultHeight = 20

	// chromeHeight is the number of lines that are not table rows.
	chromeHeight = 3
)

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("4"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

const hint = "↑/↓ select · enter print path · ctrl+r reload · esc quit"

// reloadMsg carries the result of a [Loader] run in the background.
type reloadMsg struct {
	entries []Entry
	err     error
}

type model struct {
	ctxFunc func() context.Context
	load    Loader
	input   textinput.Model
	entries entries
	matches fuzzy.Matches
	cursor  int // index into matches
	offset  int // first visible match
	width   int
	height  int
	status  string
	err     error
	chosen  string
}

// Run loads the table and starts the browser on the terminal. It returns the
// path of the entry selected with enter, or "" if the user quit without
// selecting one.
//
// The browser draws to standard error so that the selection can be captured
// from standard output.
func Run(ctx context.Context, load Loader) (string, error) {
	snap, err := load(ctx)
	if err != nil {
		return "", err
	}

	log.TraceContext(ctx, "browse start", slog.Int("count", len(snap)))

	p := tea.NewProgram(
		newModel(ctx, load, snap),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m, _ := final.(model)

	return m.chosen, nil
}

func newModel(ctx context.Context, load Loader, snap []Entry) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Placeholder = "filter keys"
	ti.Focus()
	ti.Width = defaultWidth

	m := model{
		ctxFunc: func() context.Context { return ctx },
		load:    load,
		input:   ti,
		entries: snap,
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.filter()

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			if e, ok := m.selected(); ok {
				m.chosen = e.Path
			}

			return m, tea.Quit

		case "up", "ctrl+p":
			m.move(-1)

			return m, nil

		case "down", "ctrl+n":
			m.move(1)

			return m, nil

		case "pgup":
			m.move(-m.rows())

			return m, nil

		case "pgdown":
			m.move(m.rows())

			return m, nil

		case "ctrl+r":
			m.status = "reloading…"

			return m, m.reload()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2
		m.move(0)

		return m, nil

	case reloadMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""

			return m, nil
		}

		m.entries = msg.entries
		m.err = nil
		m.status = fmt.Sprintf("reloaded %d paths", len(msg.entries))
		m.filter()

		log.TraceContext(m.ctxFunc(), "browse reload",
			slog.Int("count", len(msg.entries)),
		)

		return m, nil
	}

	pattern := m.input.Value()

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != pattern {
		m.filter()
	}

	return m, cmd
}

// reload runs the loader in the background. The current snapshot stays in
// place until the new one arrives.
func (m model) reload() tea.Cmd {
	ctx, load := m.ctxFunc(), m.load

	return func() tea.Msg {
		snap, err := load(ctx)

		return reloadMsg{entries: snap, err: err}
	}
}

// filter recomputes the matches for the current input. An empty pattern
// matches every entry in table order.
func (m *model) filter() {
	pattern := strings.TrimSpace(m.input.Value())

	if pattern == "" {
		m.matches = make(fuzzy.Matches, len(m.entries))
		for i, e := range m.entries {
			m.matches[i] = fuzzy.Match{Str: e.Key, Index: i}
		}
	} else {
		m.matches = fuzzy.FindFrom(pattern, m.entries)
	}

	m.cursor, m.offset = 0, 0
}

func (m *model) move(delta int) {
	m.cursor = max(0, min(m.cursor+delta, len(m.matches)-1))

	rows := m.rows()

	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case m.cursor >= m.offset+rows:
		m.offset = m.cursor - rows + 1
	}
}

func (m model) rows() int {
	return max(1, m.height-chromeHeight)
}

func (m model) selected() (Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return Entry{}, false
	}

	return m.entries[m.matches[m.cursor].Index], true
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	width := 0
	for _, match := range m.matches {
		width = max(width, lipgloss.Width(match.Str))
	}

	end := min(len(m.matches), m.offset+m.rows())

	for i := m.offset; i < end; i++ {
		match := m.matches[i]
		e := m.entries[match.Index]
		pad := strings.Repeat(" ", width-lipgloss.Width(e.Key))

		if i == m.cursor {
			b.WriteString(selectedStyle.Render(e.Key + pad + "  " + e.Path))
		} else {
			b.WriteString(renderKey(match))
			b.WriteString(pad + "  ")
			b.WriteString(pathStyle.Render(e.Path))
		}

		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("reload failed: " + m.err.Error()))
	case m.status != "":
		b.WriteString(hintStyle.Render(m.status))
	default:
		b.WriteString(hintStyle.Render(
			fmt.Sprintf("%d/%d · %s", len(m.matches), len(m.entries), hint),
		))
	}

	b.WriteString("\n")

	return b.String()
}

// renderKey renders a key with its matched characters highlighted.
func renderKey(match fuzzy.Match) string {
	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(keyStyle.Render(string(r)))
		}
	}

	return b.String()
}
