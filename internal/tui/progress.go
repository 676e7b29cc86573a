// Package tui renders a live progress view while a large simulation runs,
// plus the styled summary banner shown when it finishes.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GiuseppeDM98/net-worth-tracker-sub003/internal/simulation"
)

type progressMsg int

type doneMsg struct {
	results *simulation.Results
	err     error
}

type runModel struct {
	spinner   spinner.Model
	bar       progress.Model
	total     int
	completed int
	quitting  bool

	results *simulation.Results
	err     error
}

func newRunModel(total int) runModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	bar := progress.New(progress.WithDefaultGradient())

	return runModel{
		spinner: sp,
		bar:     bar,
		total:   total,
	}
}

func (m runModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.completed = int(msg)
		return m, nil

	case doneMsg:
		m.results = msg.results
		m.err = msg.err
		m.completed = m.total
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.err = context.Canceled
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m runModel) View() string {
	if m.quitting {
		return ""
	}

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.completed) / float64(m.total)
	}

	return fmt.Sprintf("\n %s Running simulation...\n\n %s\n\n %s\n\n",
		m.spinner.View(),
		m.bar.ViewAs(percent),
		countStyle.Render(fmt.Sprintf("%d / %d trials", m.completed, m.total)))
}

// Run executes the simulation behind a live progress display. Pressing q or
// ctrl+c cancels the run.
func Run(ctx context.Context, cfg simulation.EngineConfig, params simulation.Parameters) (*simulation.Results, error) {
	model := newRunModel(params.NumSimulations)
	program := tea.NewProgram(model)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	every := params.NumSimulations / 100
	if every < 1 {
		every = 1
	}
	cfg.ProgressEvery = every
	cfg.Progress = func(completed, total int) {
		program.Send(progressMsg(completed))
	}

	engine := simulation.NewEngine(cfg)
	go func() {
		results, err := engine.Run(ctx, params)
		program.Send(doneMsg{results: results, err: err})
	}()

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("progress display failed: %w", err)
	}

	m := final.(runModel)
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}
