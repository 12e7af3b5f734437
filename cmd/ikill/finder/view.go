package finder

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	rows := m.rows()
	mg := m.opts.Margins(m.width, rows)
	n := m.listRows()

	info := m.styles.info.Render(m.infoText())
	prompt := m.input.View()
	if m.opts.InlineInfo {
		prompt += "  " + m.styles.border.Render("<") + " " + info
	}

	list := make([]string, 0, n)
	for i := m.offset; i < len(m.matches) && len(list) < n; i++ {
		list = append(list, m.row(i, m.rowWidth(mg)))
	}
	for len(list) < n {
		list = append(list, "")
	}

	var lines []string
	switch m.opts.EffectiveLayout() {
	case LayoutReverse:
		lines = append(lines, prompt)
		if !m.opts.InlineInfo {
			lines = append(lines, info)
		}
		lines = append(lines, list...)
	case LayoutReverseList:
		lines = append(lines, list...)
		if !m.opts.InlineInfo {
			lines = append(lines, info)
		}
		lines = append(lines, prompt)
	default:
		for i := len(list) - 1; i >= 0; i-- {
			lines = append(lines, list[i])
		}
		if !m.opts.InlineInfo {
			lines = append(lines, info)
		}
		lines = append(lines, prompt)
	}

	return lipgloss.NewStyle().
		Margin(mg.top, mg.right, mg.bottom, mg.left).
		Render(strings.Join(lines, "\n"))
}

func (m model) infoText() string {
	s := fmt.Sprintf("%d/%d", len(m.matches), len(m.items))
	if len(m.order) > 0 {
		s += fmt.Sprintf(" (%d)", len(m.order))
	}
	if !m.sorting && m.input.Value() != "" {
		s += " -S"
	}
	return s
}

func (m model) rowWidth(mg margins) int {
	if m.width <= 0 {
		return 0
	}
	return max(m.width-mg.left-mg.right-2, 1)
}

// row renders candidate i: pointer, marker, then the text. Rows without a
// query keep their own colors; filtered rows show the match positions.
func (m model) row(i, width int) string {
	mt := m.matches[i]
	it := m.items[mt.item]
	current := i == m.cursor

	pointer := " "
	if current {
		pointer = m.styles.cursor.Render(">")
	}
	marker := " "
	if m.marked[mt.item] {
		marker = m.styles.selected.Render(">")
	}

	var body string
	switch {
	case current:
		body = highlight(it.plain, mt.positions, m.styles.current, m.styles.currentMatch)
	case len(mt.positions) > 0:
		body = highlight(it.plain, mt.positions, m.styles.text, m.styles.matched)
	default:
		body = it.text
	}
	if width > 0 {
		body = ansi.Truncate(body, width, "")
	}
	return pointer + marker + body
}

// highlight styles the bytes at positions with hl and the rest with base.
func highlight(s string, positions []int, base, hl lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(s)
	}
	hit := make(map[int]bool, len(positions))
	for _, p := range positions {
		hit[p] = true
	}

	var b strings.Builder
	var run strings.Builder
	inHit := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if inHit {
			b.WriteString(hl.Render(run.String()))
		} else {
			b.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}
	for i, r := range s {
		if hit[i] != inHit {
			flush()
			inHit = hit[i]
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}
