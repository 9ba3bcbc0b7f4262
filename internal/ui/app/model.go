package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"timeclock/internal/modules/timelog/dto"
	apperrors "timeclock/internal/platform/errors"
	"timeclock/internal/platform/money"
	"timeclock/internal/ui/theme"
)

const defaultRefresh = 30 * time.Second

// ─── ports ───────────────────────────────────────────────────────────────────

type timelogPort interface {
	ClockIn(ctx context.Context) (dto.ClockInOutput, error)
	ClockOut(ctx context.Context, category string) (dto.ClockOutOutput, error)
	Current(ctx context.Context) (dto.CurrentOutput, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type currentLoadedMsg struct {
	current dto.CurrentOutput
	err     error
}

type clockedInMsg struct {
	out dto.ClockInOutput
	err error
}

type clockedOutMsg struct {
	out dto.ClockOutOutput
	err error
}

type tickMsg time.Time

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	In      key.Binding
	Out     key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		In:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "clock in")),
		Out:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "clock out")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.In, k.Out, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.In, k.Out},
		{k.Refresh, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is a live status view of the time log. It polls the current entry on a
// fixed interval and can clock in or out with a single key.
type Model struct {
	timelog  timelogPort
	category string
	wage     decimal.Decimal
	refresh  time.Duration

	keys     keyMap
	help     help.Model
	showHelp bool
	width    int

	current    dto.CurrentOutput
	hasCurrent bool
	loaded     bool
	status     string
	failed     bool
}

// NewModel builds the view. category is used for every clock out; a zero refresh
// falls back to thirty seconds.
func NewModel(timelog timelogPort, category string, wage decimal.Decimal, refresh time.Duration) Model {
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	return Model{
		timelog:  timelog,
		category: category,
		wage:     wage,
		refresh:  refresh,
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCurrentCmd(), m.tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.loadCurrentCmd(), m.tickCmd())

	case currentLoadedMsg:
		m.loaded = true
		switch {
		case errors.Is(msg.err, apperrors.ErrNoOpenEntry):
			m.hasCurrent = false
			m.current = dto.CurrentOutput{}
		case msg.err != nil:
			m.setError(msg.err)
		default:
			m.hasCurrent = true
			m.current = msg.current
		}
		return m, nil

	case clockedInMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.setStatus("clocked in at " + msg.out.StartedAt.Format("15:04"))
		return m, m.loadCurrentCmd()

	case clockedOutMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("clocked out: %.2fh %s", msg.out.Hours, msg.out.Category))
		return m, m.loadCurrentCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
		case key.Matches(msg, m.keys.In):
			return m, m.clockInCmd()
		case key.Matches(msg, m.keys.Out):
			return m, m.clockOutCmd()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadCurrentCmd()
		}
	}
	return m, nil
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.failed = false
}

func (m *Model) setError(err error) {
	m.status = "error: " + err.Error()
	m.failed = true
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("timeclock"),
		"",
		m.renderCurrent(),
	)
	pane := theme.Pane.Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, pane, m.renderStatusBar(), m.help.View(m.keys))
}

func (m Model) renderCurrent() string {
	if !m.loaded {
		return theme.Muted.Render("loading…")
	}
	if !m.hasCurrent {
		return theme.Muted.Render("not clocked in")
	}
	entry := m.current.Entry
	lines := []string{
		theme.Hot.Render("● on the clock since " + entry.Start.Format("15:04")),
		fmt.Sprintf("open   %6.2fh", m.current.OpenHours),
		fmt.Sprintf("today  %6.2fh  %s", m.current.Hours, money.Format(money.Gross(m.current.Hours, m.wage))),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	if m.status == "" {
		return ""
	}
	if m.failed {
		return theme.Err.Render(m.status)
	}
	return theme.Muted.Render(m.status)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadCurrentCmd() tea.Cmd {
	return func() tea.Msg {
		current, err := m.timelog.Current(context.Background())
		return currentLoadedMsg{current: current, err: err}
	}
}

func (m Model) clockInCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.timelog.ClockIn(context.Background())
		return clockedInMsg{out: out, err: err}
	}
}

func (m Model) clockOutCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.timelog.ClockOut(context.Background(), m.category)
		return clockedOutMsg{out: out, err: err}
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg { return tickMsg(t) })
}
