package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultTickInterval = 200 * time.Millisecond
	// Lines above and below the table: header, summary, totals, footer, and borders.
	chromeLines = 6
)

// Options configures the live UI.
type Options struct {
	NoColor      bool
	TickInterval time.Duration
	Now          func() time.Time
}

// Model is the Bubble Tea model behind the live validation table.
type Model struct {
	opts      Options
	events    <-chan Event
	state     State
	grid      table.Model
	fileWidth int
	now       time.Time
}

// EventMsg delivers one validator event to the model.
type EventMsg struct {
	Event Event
}

type tickMsg time.Time

// NewModel builds a model that reads from events. A nil channel yields a model driven only
// through Update, as in tests.
func NewModel(events <-chan Event, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	columns := defaultColumns()
	grid := table.New(table.WithColumns(columns), table.WithFocused(false))
	grid.SetStyles(tableStyles(opts.NoColor))
	return Model{
		opts:      opts,
		events:    events,
		grid:      grid,
		fileWidth: columns[0].Width,
		now:       opts.Now(),
	}
}

// State returns the folded validation state.
func (m Model) State() State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.next(), m.tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		m = m.apply(msg.Event)
		if msg.Event.Kind == EventRunEnd {
			return m, tea.Quit
		}
		return m, m.next()
	case tickMsg:
		m.now = time.Time(msg)
		m.sync()
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	noColor := m.opts.NoColor
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.state, m.now, noColor),
		renderSummary(m.state, noColor),
		renderTotals(m.state, noColor),
		m.grid.View(),
		renderFooter(m.state, noColor),
	)
}

func (m Model) apply(event Event) Model {
	switch event.Kind {
	case EventRunStart:
		m.state = StartState(m.state, event.Files, m.opts.Now())
	case EventFile:
		m.state = Reduce(m.state, event.File)
	case EventRunEnd:
		m.now = m.opts.Now()
		m.state = Finish(m.state, event.Report)
	}
	m.sync()
	return m
}

func (m *Model) resize(width, height int) {
	columns := columnsForWidth(width)
	m.grid.SetColumns(columns)
	m.grid.SetWidth(width)
	m.grid.SetHeight(max(height-chromeLines, 1))
	m.fileWidth = columns[0].Width
	m.sync()
}

func (m *Model) sync() {
	m.grid.SetRows(rowsForState(m.state, m.now, m.fileWidth, m.opts.NoColor))
}

// next waits for the following event; a closed channel ends the program.
func (m Model) next() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(at time.Time) tea.Msg { return tickMsg(at) })
}
