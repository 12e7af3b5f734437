package finder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

var errBadIndex = errors.New("invalid selection")

// Prompt lists the candidates with numbers and reads the choice from a
// readline prompt, e.g. "1 3 5-7".
type Prompt struct {
	Options Options
	Output  io.Writer
}

func (p *Prompt) Select(ctx context.Context, lines []string) ([]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	out := p.Output
	if out == nil {
		out = os.Stderr
	}

	order := ordered(len(lines), p.Options.Tac)
	width := len(strconv.Itoa(len(order)))
	for n, i := range order {
		fmt.Fprintf(out, "%*d  %s\n", width, n+1, lines[i])
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt: "kill> ",
		Stdout: out,
		Stderr: out,
	})
	if err != nil {
		return nil, fmt.Errorf("opening prompt: %w", err)
	}
	defer rl.Close()

	for {
		if err := ctx.Err(); err != nil {
			return nil, ErrAborted
		}
		input, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return nil, ErrAborted
		}
		if err != nil {
			return nil, fmt.Errorf("reading selection: %w", err)
		}
		picks, err := parseIndices(input, len(order))
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if len(picks) == 0 {
			return nil, ErrAborted
		}
		selected := make([]string, len(picks))
		for k, n := range picks {
			selected[k] = lines[order[n]]
		}
		return selected, nil
	}
}

// parseIndices reads 1-based numbers and ranges separated by spaces or
// commas and returns 0-based indices in input order without repeats.
func parseIndices(input string, n int) ([]int, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	seen := make(map[int]bool)
	var out []int
	add := func(i int) {
		if !seen[i] {
			seen[i] = true
			out = append(out, i-1)
		}
	}
	for _, f := range fields {
		lo, hi, isRange := strings.Cut(f, "-")
		a, err := strconv.Atoi(lo)
		if err != nil || a < 1 || a > n {
			return nil, fmt.Errorf("%w: %q (expected 1-%d)", errBadIndex, f, n)
		}
		if !isRange {
			add(a)
			continue
		}
		b, err := strconv.Atoi(hi)
		if err != nil || b < a || b > n {
			return nil, fmt.Errorf("%w: %q (expected 1-%d)", errBadIndex, f, n)
		}
		for i := a; i <= b; i++ {
			add(i)
		}
	}
	return out, nil
}
