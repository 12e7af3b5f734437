package finder

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/x/ansi"
	"github.com/ktr0731/go-fuzzyfinder"
)

// Fuzzyfinder runs the selection through go-fuzzyfinder. Only tac is
// honored; layout and theme belong to the library.
type Fuzzyfinder struct {
	Options Options
}

func (f *Fuzzyfinder) Select(ctx context.Context, lines []string) ([]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	order := ordered(len(lines), f.Options.Tac)
	plain := make([]string, len(order))
	for i, j := range order {
		plain[i] = ansi.Strip(lines[j])
	}

	idx, err := fuzzyfinder.FindMulti(
		plain,
		func(i int) string {
			return plain[i]
		},
		fuzzyfinder.WithPromptString("> "),
		fuzzyfinder.WithHeader("tab: mark  enter: kill  esc: cancel"),
		fuzzyfinder.WithContext(ctx),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) || errors.Is(err, context.Canceled) {
			return nil, ErrAborted
		}
		return nil, fmt.Errorf("running fuzzyfinder: %w", err)
	}

	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = lines[order[i]]
	}
	return out, nil
}
