package corpus

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Entry is one resolved selection.
type Entry struct {
	Name string
	PID  int32
}

// Selection is the ordered set of processes the operator picked.
type Selection struct {
	entries []Entry
	index   map[int32]int
}

// ParseLine extracts the (name, pid) pair from a selected line. Only the
// final token is trusted as the pid; the first token is the display name.
func ParseLine(line string) (Entry, bool) {
	fields := strings.Fields(ansi.Strip(line))
	if len(fields) < 2 {
		return Entry{}, false
	}
	pid, err := strconv.ParseInt(fields[len(fields)-1], 10, 32)
	if err != nil || pid <= 0 {
		return Entry{}, false
	}
	return Entry{Name: fields[0], PID: int32(pid)}, true
}

// Resolve maps the surface's selected lines back to pids. Malformed lines
// are dropped one by one; a repeated pid keeps its first position.
func Resolve(lines []string) Selection {
	s := Selection{index: make(map[int32]int, len(lines))}
	for _, line := range lines {
		e, ok := ParseLine(line)
		if !ok {
			continue
		}
		if _, dup := s.index[e.PID]; dup {
			continue
		}
		s.index[e.PID] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	return s
}

func (s Selection) Len() int { return len(s.entries) }

func (s Selection) Empty() bool { return len(s.entries) == 0 }

func (s Selection) Contains(pid int32) bool {
	_, ok := s.index[pid]
	return ok
}

// Name returns the display name recorded for pid.
func (s Selection) Name(pid int32) string {
	if i, ok := s.index[pid]; ok {
		return s.entries[i].Name
	}
	return ""
}

// Names returns the display names in selection order.
func (s Selection) Names() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Name
	}
	return out
}

func (s Selection) Entries() []Entry { return append([]Entry(nil), s.entries...) }
