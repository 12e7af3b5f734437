// Package finder is the interactive selection surface: it shows the rendered
// corpus, lets the operator fuzzy-filter and mark lines, and hands back the
// chosen lines verbatim in the order they were picked.
package finder

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAborted is returned when the operator cancels the selection.
	ErrAborted = errors.New("selection aborted")

	ErrUnknownKind = errors.New("unknown finder")
)

// Surface runs one interactive selection over lines.
type Surface interface {
	Select(ctx context.Context, lines []string) ([]string, error)
}

// Kind names a Surface implementation.
type Kind string

const (
	KindTUI         Kind = "tui"
	KindFuzzyfinder Kind = "fuzzyfinder"
	KindPrompt      Kind = "prompt"
)

// Kinds lists the supported surfaces, default first.
var Kinds = []Kind{KindTUI, KindFuzzyfinder, KindPrompt}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return KindTUI, nil
	}
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownKind, s, KindNames())
}

// New returns the surface for k configured with opts.
func New(k Kind, opts Options) (Surface, error) {
	switch k {
	case KindTUI, "":
		return &TUI{Options: opts}, nil
	case KindFuzzyfinder:
		return &Fuzzyfinder{Options: opts}, nil
	case KindPrompt:
		return &Prompt{Options: opts}, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownKind, k, KindNames())
}

// KindNames is the comma separated list of supported kinds.
func KindNames() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// ordered returns the indices of lines in presentation order.
func ordered(n int, tac bool) []int {
	idx := make([]int, n)
	for i := range idx {
		if tac {
			idx[i] = n - 1 - i
		} else {
			idx[i] = i
		}
	}
	return idx
}
