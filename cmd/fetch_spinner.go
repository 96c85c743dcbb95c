package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	fetchErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type fetchDoneMsg struct {
	err error
}

type fetchSpinnerModel struct {
	spinner spinner.Model
	label   string
	fetch   tea.Cmd
	err     error
	done    bool
}

func newFetchSpinnerModel(label string, fetch tea.Cmd) fetchSpinnerModel {
	return fetchSpinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		label:   label,
		fetch:   fetch,
	}
}

func (m fetchSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m fetchSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case fetchDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

// View leaves a failure marker behind on error; the caller reports the error
// itself, so only the label is repeated here. Success clears the line.
func (m fetchSpinnerModel) View() string {
	switch {
	case m.done && m.err != nil:
		return fetchErrStyle.Render("✗ "+strings.TrimSuffix(m.label, "...")) + "\n"
	case m.done:
		return ""
	default:
		return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	}
}

func runFetchSpinner(ctx context.Context, output io.Writer, label string, fetch func(context.Context) error) error {
	fetchCmd := func() tea.Msg {
		return fetchDoneMsg{err: fetch(ctx)}
	}

	p := tea.NewProgram(
		newFetchSpinnerModel(label, fetchCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(fetchSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
