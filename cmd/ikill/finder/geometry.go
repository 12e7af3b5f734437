package finder

import (
	"strconv"
	"strings"
)

const minRows = 3

// size parses "N" (absolute) or "N%" (relative to total).
func size(s string, total int) (int, bool) {
	s = strings.TrimSpace(s)
	if p, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil || f < 0 || f > 100 {
			return 0, false
		}
		return int(float64(total) * f / 100), true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Rows is the number of terminal rows the surface occupies.
func (o Options) Rows(termHeight int) int {
	rows, ok := size(o.Height, termHeight)
	if !ok {
		rows, _ = size(DefaultHeight, termHeight)
	}
	rows = min(max(rows, minRows), termHeight)
	return max(rows, 0)
}

// FullScreen reports whether the surface takes over the whole terminal.
func (o Options) FullScreen() bool {
	rows, ok := size(o.Height, 100)
	return ok && strings.HasSuffix(strings.TrimSpace(o.Height), "%") && rows >= 100
}

type margins struct {
	top, right, bottom, left int
}

// Margins resolves the fzf-style margin spec: one value for all sides, two
// for vertical/horizontal, three for top/horizontal/bottom, four for
// top/right/bottom/left. Vertical values are relative to height, horizontal
// ones to width.
func (o Options) Margins(width, height int) margins {
	parts := strings.Split(o.Margin, ",")
	v := func(i int) int {
		n, _ := size(parts[i], height)
		return n
	}
	h := func(i int) int {
		n, _ := size(parts[i], width)
		return n
	}
	switch len(parts) {
	case 1:
		return margins{v(0), h(0), v(0), h(0)}
	case 2:
		return margins{v(0), h(1), v(0), h(1)}
	case 3:
		return margins{v(0), h(1), v(2), h(1)}
	case 4:
		return margins{v(0), h(1), v(2), h(3)}
	}
	return margins{}
}
