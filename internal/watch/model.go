package watch

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/felipesere/everdiff/internal/applog"
)

// maxLogLines bounds how many recent log lines the TUI keeps on screen.
const maxLogLines = 5

// fileChangedMsg signals that one of the watched files was written.
type fileChangedMsg struct{}

// resultMsg carries a completed pipeline run back into Update.
type resultMsg Result

// watchErrMsg carries an fsnotify error.
type watchErrMsg struct{ err error }

// logLineMsg carries one log entry delivered by the log [applog.Subscription].
type logLineMsg []byte

// Model is the bubbletea model driving the watch TUI: it serializes
// pipeline runs so a file change arriving mid-run is coalesced into exactly
// one follow-up run rather than overlapping.
type Model struct {
	pipeline Pipeline
	watcher  *fsnotify.Watcher
	logs     *applog.Subscription

	width, height int
	running       bool
	pending       bool
	last          Result
	logLines      []string
}

// NewModel creates a watch Model watching Pipeline's two files. logs, if
// non-nil, is a subscription to the application's log output; recent lines
// are shown alongside the rendered diff.
func NewModel(p Pipeline, logs *applog.Subscription) (*Model, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	if err := w.Add(p.LeftPath); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", p.LeftPath, err)
	}

	if err := w.Add(p.RightPath); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", p.RightPath, err)
	}

	return &Model{pipeline: p, watcher: w, logs: logs, width: 100}, nil
}

// Init kicks off the file watch, the log tail, and the first pipeline run.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForEvent(), m.runPipeline()}
	if m.logs != nil {
		cmds = append(cmds, m.waitForLog())
	}

	return tea.Batch(cmds...)
}

func (m *Model) waitForLog() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-m.logs.C()
		if !ok {
			return nil
		}

		return logLineMsg(line)
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-m.watcher.Events:
				if !ok {
					return nil
				}

				if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					return fileChangedMsg{}
				}
			case err, ok := <-m.watcher.Errors:
				if !ok {
					return nil
				}

				return watchErrMsg{err: err}
			}
		}
	}
}

func (m *Model) runPipeline() tea.Cmd {
	m.running = true
	pipeline := m.pipeline
	width := m.width

	return func() tea.Msg {
		return resultMsg(pipeline.Run(width))
	}
}

// Update handles key presses, resize, file-change notifications, and
// completed pipeline runs.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.watcher.Close()
			if m.logs != nil {
				m.logs.Close()
			}

			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case fileChangedMsg:
		if m.running {
			m.pending = true
			return m, m.waitForEvent()
		}

		return m, tea.Batch(m.waitForEvent(), m.runPipeline())

	case watchErrMsg:
		m.last = Result{Err: msg.err}
		return m, m.waitForEvent()

	case resultMsg:
		m.running = false
		m.last = Result(msg)

		if m.pending {
			m.pending = false
			return m, m.runPipeline()
		}

		return m, nil

	case logLineMsg:
		for _, line := range strings.Split(strings.TrimRight(string(msg), "\n"), "\n") {
			if line == "" {
				continue
			}

			m.logLines = append(m.logLines, line)
		}

		if len(m.logLines) > maxLogLines {
			m.logLines = m.logLines[len(m.logLines)-maxLogLines:]
		}

		return m, m.waitForLog()
	}

	return m, nil
}

// View renders the last completed run plus a trailing log tail, or a
// waiting message before the first run lands.
func (m *Model) View() tea.View {
	if m.last.Err != nil {
		return tea.NewView(fmt.Sprintf("error: %v\n", m.last.Err))
	}

	body := m.last.Rendered
	if body == "" {
		body = "watching for changes... (press q to quit)\n"
	}

	if len(m.logLines) > 0 {
		body += "\n" + strings.Join(m.logLines, "\n") + "\n"
	}

	v := tea.NewView(body)
	v.AltScreen = true

	return v
}
