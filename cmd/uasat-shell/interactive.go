package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uasat/shell/config"
	"github.com/uasat/shell/engine"
	uaserrors "github.com/uasat/shell/errors"
	"github.com/uasat/shell/session"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type shellState int

const (
	stateLoading shellState = iota
	stateLoadFailed
	stateIdle
	stateRunning
)

type loadedMsg struct {
	err    error
	eng    *engine.Engine
	runner *engine.Runner
}

type runDoneMsg struct {
	err      error
	rendered string
}

type shellModel struct {
	cfg       *config.ShellConfig
	sess      *session.Session
	eng       *engine.Engine
	runner    *engine.Runner
	cancelRun context.CancelFunc
	input     textarea.Model
	output    string
	state     shellState
}

func newShellModel(cfg *config.ShellConfig) *shellModel {
	ti := textarea.New()
	ti.Placeholder = "Input for the uasat library"
	ti.SetHeight(6)
	ti.Focus()

	return &shellModel{
		cfg:    cfg,
		sess:   session.New(nil),
		input:  ti,
		output: session.StatusLoading,
		state:  stateLoading,
	}
}

func (m *shellModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadLibrary)
}

// loadLibrary acquires the external module asynchronously. The shell stays
// responsive while it runs; the handle becomes present only on success.
func (m *shellModel) loadLibrary() tea.Msg {
	ctx := context.Background()

	data, err := os.ReadFile(m.cfg.WasmPath)
	if err != nil {
		return loadedMsg{err: err}
	}

	eng, err := engine.New(ctx, engine.Config{
		MemoryLimitPages: m.cfg.Wasm.MemoryPages,
		CloseOnCancel:    m.cfg.Wasm.CloseOnCancel,
		EntryFunc:        m.cfg.EntryFunc,
	})
	if err != nil {
		return loadedMsg{err: err}
	}

	mod, err := eng.Load(ctx, data)
	if err != nil {
		eng.Close(ctx)
		return loadedMsg{err: err}
	}

	return loadedMsg{eng: eng, runner: engine.NewRunner(mod)}
}

func (m *shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "ctrl+r":
			return m.startRun()

		case "esc":
			// Stop: cancels an in-flight run; a no-op otherwise.
			if m.state == stateRunning && m.cancelRun != nil {
				m.cancelRun()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.input.SetWidth(msg.Width - 4)
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.state = stateLoadFailed
			m.output = session.RenderLoadError(msg.err.Error())
			return m, nil
		}
		m.eng = msg.eng
		m.runner = msg.runner
		m.sess.Attach(msg.runner)
		m.state = stateIdle
		m.output = session.StatusLoaded
		return m, nil

	case runDoneMsg:
		m.state = stateIdle
		if m.cancelRun != nil {
			m.cancelRun() // release the run's context
			m.cancelRun = nil
		}
		switch {
		case msg.err == nil:
			m.output = msg.rendered
		case goerrors.Is(msg.err, &uaserrors.Error{Phase: uaserrors.PhaseRuntime, Kind: uaserrors.KindCanceled}):
			m.output = session.StatusCanceled
		default:
			// Deliberate policy: faults inside the computation are caught
			// and reported instead of leaving the output at "Working...".
			m.output = fmt.Sprintf("Error: %v", msg.err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startRun begins a run: precondition check, then the working status, then
// the invocation as a deferred command so the status renders first.
func (m *shellModel) startRun() (tea.Model, tea.Cmd) {
	if m.state == stateRunning {
		return m, nil
	}
	if !m.sess.Loaded() {
		m.output = session.MsgNotLoaded
		return m, nil
	}

	m.state = stateRunning
	m.output = session.StatusWorking

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelRun = cancel

	return m, m.runCommand(ctx, m.input.Value())
}

func (m *shellModel) runCommand(ctx context.Context, input string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.sess.Run(ctx, input)
		if err != nil {
			return runDoneMsg{err: err}
		}
		return runDoneMsg{rendered: res.Render()}
	}
}

func (m *shellModel) quit() tea.Cmd {
	ctx := context.Background()
	if m.cancelRun != nil {
		m.cancelRun()
	}
	if m.runner != nil {
		m.runner.Close(ctx)
	}
	if m.eng != nil {
		m.eng.Close(ctx)
	}
	return tea.Quit
}

func (m *shellModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("uasat shell"))
	b.WriteString(" ")
	b.WriteString(m.cfg.WasmPath)
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.state {
	case stateLoading:
		b.WriteString(statusStyle.Render(m.output))
	case stateLoadFailed:
		b.WriteString(errorStyle.Render(m.output))
	case stateRunning:
		b.WriteString(statusStyle.Render(m.output))
	default:
		if strings.HasPrefix(m.output, "Error:") {
			b.WriteString(errorStyle.Render(m.output))
		} else {
			b.WriteString(resultStyle.Render(m.output))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("ctrl+r run • esc stop • ctrl+c quit"))

	return b.String()
}

func runInteractive(cfg *config.ShellConfig) error {
	p := tea.NewProgram(newShellModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
