// Package tui renders a live view of a batch's runs while an external
// executor works through them.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"qactl/internal/client"
	"qactl/pkg/logging"
)

const pollInterval = 2 * time.Second

// RunStore is the slice of the remote API the watch view needs.
type RunStore interface {
	GetRun(ctx context.Context, id string) (*client.Run, error)
}

// Entry is one watched run.
type Entry struct {
	RunID    string
	TestName string
	Run      *client.Run
	Err      error
}

// Model is the bubbletea model for `qactl watch`.
type Model struct {
	store   RunStore
	entries []Entry
	logCh   <-chan logging.LogEntry

	spinner  spinner.Model
	selected int
	status   string
	lastLog  string
	width    int
	quitting bool
}

// New creates a watch model over the given run ids. testNames pairs with
// runIDs by index; missing names render as the run id.
func New(store RunStore, runIDs, testNames []string) Model {
	entries := make([]Entry, len(runIDs))
	for i, id := range runIDs {
		entries[i] = Entry{RunID: id}
		if i < len(testNames) {
			entries[i].TestName = testNames[i]
		}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		store:   store,
		entries: entries,
		spinner: sp,
	}
}

// WithLogChannel attaches the watch-mode log channel so entries surface in
// the view instead of being dropped. The caller owns closing the channel.
func (m Model) WithLogChannel(ch <-chan logging.LogEntry) Model {
	m.logCh = ch
	return m
}

type pollMsg []Entry

type tickMsg struct{}

type logMsg logging.LogEntry

func waitForLog(ch <-chan logging.LogEntry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return logMsg(entry)
	}
}

func (m Model) pollRuns() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), pollInterval)
	defer cancel()

	polled := make([]Entry, len(m.entries))
	copy(polled, m.entries)
	for i := range polled {
		if polled[i].Run != nil && polled[i].Run.Status.Terminal() {
			continue
		}
		run, err := m.store.GetRun(ctx, polled[i].RunID)
		if err != nil {
			polled[i].Err = err
			continue
		}
		polled[i].Run = run
		polled[i].Err = nil
	}
	return pollMsg(polled)
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.pollRuns}
	if m.logCh != nil {
		cmds = append(cmds, waitForLog(m.logCh))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
			return m, nil
		case "y":
			if len(m.entries) == 0 {
				return m, nil
			}
			if err := clipboard.WriteAll(m.entries[m.selected].RunID); err != nil {
				m.status = "copy failed: " + err.Error()
			} else {
				m.status = "run id copied"
			}
			return m, nil
		}
		return m, nil

	case pollMsg:
		m.entries = msg
		if m.allTerminal() {
			m.status = "all runs completed"
			return m, nil
		}
		return m, tick()

	case tickMsg:
		return m, m.pollRuns

	case logMsg:
		m.lastLog = fmt.Sprintf("[%s] %s: %s", msg.Level, msg.Subsystem, msg.Message)
		if msg.Err != nil {
			m.lastLog += ": " + msg.Err.Error()
		}
		return m, waitForLog(m.logCh)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) allTerminal() bool {
	for _, e := range m.entries {
		if e.Run == nil || !e.Run.Status.Terminal() {
			return false
		}
	}
	return len(m.entries) > 0
}
