// Package eventview is a live terminal viewer for the event stream of a
// running loop. The probe tool feeds it one message per delivered event;
// it keeps a scrollback of recent lines and per-kind counters.
package eventview

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-casement/casement"
)

// EventMsg delivers one loop event into the viewer. Send it with
// (*tea.Program).Send from the loop's handler goroutine.
type EventMsg struct {
	Event casement.Event
	Time  time.Time
}

type entry struct {
	seq  uint64
	at   time.Time
	text string
}

// Model is the root bubbletea model for the viewer.
type Model struct {
	backend string

	entries []entry
	maxRows int
	seq     uint64
	total   uint64
	counts  map[string]uint64
	paused  bool

	// Cycle markers dominate the stream under Poll; hide them by default.
	showMarkers bool

	width  int
	height int
}

// New returns a viewer for a loop running on the named backend. maxRows
// bounds the scrollback.
func New(backend string, maxRows int) Model {
	if maxRows < 1 {
		maxRows = 256
	}
	return Model{
		backend: backend,
		maxRows: maxRows,
		counts:  make(map[string]uint64),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "p", " ":
			m.paused = !m.paused
		case "m":
			m.showMarkers = !m.showMarkers
		case "c":
			m.entries = nil
			m.counts = make(map[string]uint64)
			m.total = 0
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case EventMsg:
		m.total++
		m.counts[label(msg.Event)]++
		if m.paused {
			return m, nil
		}
		if !m.showMarkers && isMarker(msg.Event) {
			return m, nil
		}
		m.seq++
		m.entries = append(m.entries, entry{seq: m.seq, at: msg.Time, text: Describe(msg.Event)})
		if len(m.entries) > m.maxRows {
			m.entries = m.entries[len(m.entries)-m.maxRows:]
		}
	}
	return m, nil
}

func isMarker(ev casement.Event) bool {
	switch ev.(type) {
	case casement.NewEvents, casement.MainEventsCleared, casement.RedrawEventsCleared:
		return true
	}
	return false
}

var (
	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	seqStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("66"))

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := m.renderStatusBar()
	helpBar := helpStyle.Width(m.width).Render(
		"p/space: pause  m: toggle cycle markers  c: clear  q/ctrl-c: quit")

	contentHeight := m.height - lipgloss.Height(statusBar) - lipgloss.Height(helpBar)
	if contentHeight < 1 {
		contentHeight = 1
	}

	rows := m.entries
	if len(rows) > contentHeight {
		rows = rows[len(rows)-contentHeight:]
	}
	lines := make([]string, 0, contentHeight)
	for _, e := range rows {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			seqStyle.Render(fmt.Sprintf("%6d", e.seq)),
			timeStyle.Render(e.at.Format("15:04:05.000")),
			e.text))
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		strings.Join(lines, "\n"),
		helpBar,
	)
}

func (m Model) renderStatusBar() string {
	parts := []string{
		"backend:" + m.backend,
		fmt.Sprintf("events:%d", m.total),
	}
	parts = append(parts, m.topCounts(3)...)
	if m.paused {
		parts = append(parts, pausedStyle.Render("PAUSED"))
	}
	return statusStyle.Width(m.width).Render(strings.Join(parts, "  "))
}

// topCounts returns the n busiest event kinds as "kind:count" strings.
func (m Model) topCounts(n int) []string {
	type kc struct {
		kind  string
		count uint64
	}
	all := make([]kc, 0, len(m.counts))
	for k, c := range m.counts {
		all = append(all, kc{k, c})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].kind < all[j].kind
	})
	if len(all) > n {
		all = all[:n]
	}
	out := make([]string, 0, len(all))
	for _, e := range all {
		out = append(out, fmt.Sprintf("%s:%d", e.kind, e.count))
	}
	return out
}
