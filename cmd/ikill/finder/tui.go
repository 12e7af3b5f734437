package finder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI is the bubbletea selection surface. It draws on stderr and reads keys
// from the controlling terminal so stdout stays free for the caller.
type TUI struct {
	Options Options
	Output  io.Writer
}

func (t *TUI) Select(ctx context.Context, lines []string) ([]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	out := t.Output
	if out == nil {
		out = os.Stderr
	}
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInputTTY(),
	}
	if t.Options.FullScreen() {
		opts = append(opts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(newModel(t.Options, lines), opts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
			return nil, ErrAborted
		}
		return nil, fmt.Errorf("running finder: %w", err)
	}
	m, ok := final.(model)
	if !ok || m.aborted {
		return nil, ErrAborted
	}
	return m.result, nil
}
