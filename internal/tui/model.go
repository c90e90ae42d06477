// Package tui implements the interactive search-as-you-type screen.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kamusis/deck-cli/internal/catalog"
	"github.com/kamusis/deck-cli/internal/dashboard"
	"github.com/kamusis/deck-cli/internal/search"
)

// debounceInterval is the delay after the last keystroke before searching.
const debounceInterval = 300 * time.Millisecond

// reloadDelay lets a burst of file events settle before the catalog is
// reloaded.
const reloadDelay = 200 * time.Millisecond

// Backend is the part of the dashboard the screen needs.
type Backend interface {
	Search(query string, opts dashboard.SearchOptions) []search.Result
	Open(appID, categoryID string) (catalog.App, catalog.Category, error)
	RecordQuery(query string)
}

// Options configures NewModel.
type Options struct {
	Backend Backend
	// Search is applied to every query. Limit defaults to the screen height.
	Search dashboard.SearchOptions
	// Launch opens the URL of the chosen app. Nil only selects it.
	Launch func(url string) error
	// Reload re-reads the catalog. It is called after Changes fires.
	Reload func() error
	// Changes signals catalog changes on disk. Nil disables hot reload.
	Changes <-chan struct{}
}

type debounceMsg struct{ id uint64 }

type catalogChangedMsg struct{}

type reloadMsg struct{ id uint64 }

// Model is the Bubble Tea model of the search screen.
type Model struct {
	opts Options

	query     string
	lastQuery string
	results   []search.Result
	selection int
	status    string
	chosen    *search.Result

	debounceID uint64
	reloadID   uint64

	width  int
	height int
}

// NewModel creates the search screen.
func NewModel(opts Options) Model {
	return Model{opts: opts, selection: -1}
}

// Chosen returns the app opened with Enter, if any.
func (m Model) Chosen() (search.Result, bool) {
	if m.chosen == nil {
		return search.Result{}, false
	}
	return *m.chosen, true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case debounceMsg:
		if msg.id != m.debounceID {
			return m, nil
		}
		m.runSearch(false)
		return m, nil

	case catalogChangedMsg:
		m.reloadID++
		id := m.reloadID
		return m, tea.Tick(reloadDelay, func(time.Time) tea.Msg { return reloadMsg{id: id} })

	case reloadMsg:
		if msg.id != m.reloadID {
			return m, m.waitForChange()
		}
		if m.opts.Reload != nil {
			if err := m.opts.Reload(); err != nil {
				m.status = fmt.Sprintf("catalog reload failed: %v", err)
			} else {
				m.runSearch(true)
				m.status = "catalog reloaded"
			}
		}
		return m, m.waitForChange()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEnter:
		if m.selection < 0 || m.selection >= len(m.results) {
			return m, nil
		}
		r := m.results[m.selection]
		app, _, err := m.opts.Backend.Open(r.ID, r.CategoryID)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.opts.Backend.RecordQuery(m.query)
		if m.opts.Launch != nil && app.URL != "" {
			if err := m.opts.Launch(app.URL); err != nil {
				m.status = fmt.Sprintf("cannot open %s: %v", app.URL, err)
				return m, nil
			}
		}
		m.chosen = &r
		return m, tea.Quit

	case tea.KeyUp, tea.KeyCtrlP:
		if m.selection > 0 {
			m.selection--
		}
		return m, nil

	case tea.KeyDown, tea.KeyCtrlN:
		if m.selection < len(m.results)-1 {
			m.selection++
		}
		return m, nil

	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
			return m, m.startDebounce()
		}
		return m, nil

	case tea.KeyCtrlU:
		m.query = ""
		return m, m.startDebounce()

	case tea.KeySpace:
		m.query += " "
		return m, m.startDebounce()

	case tea.KeyRunes:
		m.query += string(msg.Runes)
		return m, m.startDebounce()
	}
	return m, nil
}

// startDebounce returns a tick that triggers a search unless another
// keystroke arrives first.
func (m *Model) startDebounce() tea.Cmd {
	m.debounceID++
	id := m.debounceID
	return tea.Tick(debounceInterval, func(time.Time) tea.Msg {
		return debounceMsg{id: id}
	})
}

// runSearch queries the backend unless the trimmed query did not change.
func (m *Model) runSearch(force bool) {
	q := strings.TrimSpace(m.query)
	if q == m.lastQuery && !force {
		return
	}
	m.lastQuery = q
	if q == "" {
		m.results = nil
		m.selection = -1
		return
	}

	opts := m.opts.Search
	if opts.Limit == 0 {
		opts.Limit = m.listHeight()
	}
	m.results = m.opts.Backend.Search(q, opts)
	m.status = ""
	if len(m.results) == 0 {
		m.selection = -1
		return
	}
	m.selection = max(0, min(m.selection, len(m.results)-1))
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.opts.Changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return catalogChangedMsg{}
	}
}

// listHeight returns the number of result rows that fit on screen.
func (m Model) listHeight() int {
	// query line, blank line, status line
	const chrome = 3
	h := m.height - chrome
	if h < 1 {
		h = 20
	}
	return h
}

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("search> ") + m.query)
	b.WriteString("\n\n")
	b.WriteString(m.viewResults())
	b.WriteString("\n")
	status := m.status
	if status == "" {
		status = "↑/↓ select · enter open · esc quit"
	}
	b.WriteString(dimStyle.Render(status))
	return b.String()
}

func (m Model) viewResults() string {
	if strings.TrimSpace(m.query) == "" {
		return dimStyle.Render("Type to search")
	}
	if len(m.results) == 0 {
		if m.lastQuery != strings.TrimSpace(m.query) {
			return dimStyle.Render("Searching...")
		}
		return dimStyle.Render("No matches")
	}

	var lines []string
	for i, r := range m.results {
		if i >= m.listHeight() {
			break
		}
		meta := dimStyle.Render(fmt.Sprintf("%s · %.1f", r.CategoryName, r.Score))
		if i == m.selection {
			lines = append(lines, selectedStyle.Render("> "+r.Name)+"  "+meta)
		} else {
			lines = append(lines, normalStyle.Render("  "+r.Name)+"  "+meta)
		}
	}
	return strings.Join(lines, "\n")
}
