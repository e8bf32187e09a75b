package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var connectFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

// connectStepMsg reports the outcome of opening the target at index.
type connectStepMsg struct {
	index int
	err   error
}

// connectSpinnerModel opens targets one after another, naming the one in
// flight, and ends with a summary line when any of them failed.
type connectSpinnerModel struct {
	spinner spinner.Model
	labels  []string
	step    func(int) tea.Cmd
	current int
	errs    []error
	done    bool
}

func newConnectSpinnerModel(labels []string, step func(int) tea.Cmd) connectSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return connectSpinnerModel{
		spinner: s,
		labels:  labels,
		step:    step,
	}
}

func (m connectSpinnerModel) Init() tea.Cmd {
	if len(m.labels) == 0 {
		return tea.Quit
	}
	return tea.Batch(m.spinner.Tick, m.step(0))
}

func (m connectSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case connectStepMsg:
		if msg.index != m.current || m.done {
			return m, nil
		}
		if msg.err != nil {
			m.errs = append(m.errs, msg.err)
		}
		m.current++
		if m.current == len(m.labels) {
			m.done = true
			return m, tea.Quit
		}
		return m, m.step(m.current)
	default:
		return m, nil
	}
}

func (m connectSpinnerModel) View() string {
	if m.done {
		if len(m.errs) == 0 {
			return ""
		}
		return connectFailStyle.Render(fmt.Sprintf("✗ opened %d of %d sessions", m.opened(), len(m.labels))) + "\n"
	}
	if m.current >= len(m.labels) {
		return ""
	}

	label := m.labels[m.current]
	if len(m.labels) == 1 {
		return fmt.Sprintf("%s Connecting to %s...", m.spinner.View(), label)
	}
	return fmt.Sprintf("%s Connecting to %s (%d/%d)...", m.spinner.View(), label, m.current+1, len(m.labels))
}

func (m connectSpinnerModel) opened() int {
	return m.current - len(m.errs)
}

// runConnectSpinner calls open for each label in order while a spinner names
// the target being connected. It returns how many opened and the joined
// failures.
func runConnectSpinner(ctx context.Context, output io.Writer, labels []string, open func(context.Context, int) error) (int, error) {
	step := func(i int) tea.Cmd {
		return func() tea.Msg {
			return connectStepMsg{index: i, err: open(ctx, i)}
		}
	}

	p := tea.NewProgram(
		newConnectSpinnerModel(labels, step),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}

	result, ok := finalModel.(connectSpinnerModel)
	if !ok {
		return 0, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.opened(), errors.Join(result.errs...)
}
