package corpus

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"pkt.systems/pslog"

	"ikill/cmd/ikill/snapshot"
)

const columnGap = "  "

var (
	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	pidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// Line is one rendered process. Text is what the selection surface shows;
// its last whitespace-delimited token, once styling is stripped, is the pid.
type Line struct {
	Name string
	PID  int32
	Text string
}

// Corpus is the searchable text body offered to the selection surface.
type Corpus struct {
	lines []Line
}

// Render resolves each record's name in snapshot order and lays the
// processes out as two right-aligned columns. Records whose name cannot be
// read, or reads as blank, are left out.
func Render(ctx context.Context, snap snapshot.Snapshot) Corpus {
	type row struct {
		name string
		pid  string
		id   int32
	}

	var rows []row
	nameWidth, pidWidth := 0, 0
	for _, rec := range snap.Records() {
		name, err := rec.Name(ctx)
		if err != nil {
			continue
		}
		name = sanitize(name)
		if name == "" {
			continue
		}
		pid := strconv.FormatInt(int64(rec.PID), 10)
		nameWidth = max(nameWidth, ansi.StringWidth(name))
		pidWidth = max(pidWidth, len(pid))
		rows = append(rows, row{name: name, pid: pid, id: rec.PID})
	}

	c := Corpus{lines: make([]Line, 0, len(rows))}
	for _, r := range rows {
		text := pad(nameWidth, r.name) + nameStyle.Render(r.name) +
			columnGap +
			pad(pidWidth, r.pid) + pidStyle.Render(r.pid)
		c.lines = append(c.lines, Line{Name: r.name, PID: r.id, Text: text})
	}
	pslog.Ctx(ctx).Debug("corpus rendered", "lines", len(c.lines), "skipped", snap.Len()-len(c.lines))
	return c
}

// sanitize flattens control characters to spaces so a name can never span
// lines, and trims surrounding blanks.
func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, name)
	return strings.TrimSpace(name)
}

func pad(width int, s string) string {
	if n := width - ansi.StringWidth(s); n > 0 {
		return strings.Repeat(" ", n)
	}
	return ""
}

func (c Corpus) Lines() []Line { return append([]Line(nil), c.lines...) }

func (c Corpus) Len() int { return len(c.lines) }

// Texts returns the rendered line texts in corpus order.
func (c Corpus) Texts() []string {
	out := make([]string, len(c.lines))
	for i, l := range c.lines {
		out[i] = l.Text
	}
	return out
}

// Plain returns the line texts with styling removed.
func (c Corpus) Plain() []string {
	out := make([]string, len(c.lines))
	for i, l := range c.lines {
		out[i] = ansi.Strip(l.Text)
	}
	return out
}

func (c Corpus) String() string {
	return strings.Join(c.Texts(), "\n")
}
