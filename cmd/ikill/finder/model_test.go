package finder

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var sample = []string{"bash  100", " vim  200", "sshd  300"}

func pressKey(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func typeText(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		nm, ok := next.(model)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = nm
	}
	return m
}

func TestModel_AcceptCurrentLine(t *testing.T) {
	m := send(t, newModel(Defaults(), sample), pressKey(tea.KeyEnter))
	if m.aborted || !reflect.DeepEqual(m.result, []string{"bash  100"}) {
		t.Fatalf("result = %q aborted=%v", m.result, m.aborted)
	}
}

func TestModel_TabMarksAndMoves(t *testing.T) {
	m := send(t, newModel(Defaults(), sample), pressKey(tea.KeyTab), pressKey(tea.KeyTab), pressKey(tea.KeyEnter))
	want := []string{"bash  100", " vim  200"}
	if !reflect.DeepEqual(m.result, want) {
		t.Fatalf("result = %q, want %q", m.result, want)
	}
}

func TestModel_ResultKeepsMarkingOrder(t *testing.T) {
	m := send(t, newModel(Defaults(), sample),
		pressKey(tea.KeyDown), pressKey(tea.KeyDown), pressKey(tea.KeyTab),
		pressKey(tea.KeyUp), pressKey(tea.KeyUp), pressKey(tea.KeyTab),
		pressKey(tea.KeyEnter),
	)
	want := []string{"sshd  300", "bash  100"}
	if !reflect.DeepEqual(m.result, want) {
		t.Fatalf("result = %q, want %q", m.result, want)
	}
}

func TestModel_UnmarkDropsFromResult(t *testing.T) {
	m := send(t, newModel(Defaults(), sample),
		pressKey(tea.KeyTab), pressKey(tea.KeyUp), pressKey(tea.KeyTab),
		pressKey(tea.KeyEnter),
	)
	if len(m.order) != 0 || !reflect.DeepEqual(m.result, []string{" vim  200"}) {
		t.Fatalf("result = %q", m.result)
	}
}

func TestModel_QueryFilters(t *testing.T) {
	m := send(t, newModel(Defaults(), sample), typeText("vim"))
	if len(m.matches) != 1 || m.items[m.matches[0].item].text != " vim  200" {
		t.Fatalf("matches = %+v", m.matches)
	}
	m = send(t, m, pressKey(tea.KeyEnter))
	if !reflect.DeepEqual(m.result, []string{" vim  200"}) {
		t.Fatalf("result = %q", m.result)
	}
}

func TestModel_NoMatchAcceptsNothing(t *testing.T) {
	m := send(t, newModel(Defaults(), sample), typeText("zzzz"), pressKey(tea.KeyEnter))
	if m.aborted || len(m.result) != 0 || !m.quitting {
		t.Fatalf("result = %q aborted=%v", m.result, m.aborted)
	}
}

func TestModel_Abort(t *testing.T) {
	m := newModel(Defaults(), sample)
	m = send(t, m, pressKey(tea.KeyTab))
	next, cmd := m.Update(pressKey(tea.KeyEsc))
	m = next.(model)
	if !m.aborted || m.result != nil {
		t.Fatalf("expected abort, got result=%q", m.result)
	}
	if cmd == nil {
		t.Fatal("abort must quit the program")
	}
	if m.View() != "" {
		t.Fatal("view must be cleared on quit")
	}
}

func TestModel_Tac(t *testing.T) {
	opts := Resolve([]string{"--tac"})
	m := send(t, newModel(opts, sample), pressKey(tea.KeyEnter))
	if !reflect.DeepEqual(m.result, []string{"sshd  300"}) {
		t.Fatalf("result = %q", m.result)
	}
}

func TestModel_BindSelectAll(t *testing.T) {
	opts := Resolve([]string{"--bind", "ctrl-a:select-all,ctrl-d:deselect-all"})
	m := send(t, newModel(opts, sample), pressKey(tea.KeyCtrlA), pressKey(tea.KeyEnter))
	if !reflect.DeepEqual(m.result, sample) {
		t.Fatalf("result = %q", m.result)
	}

	m = send(t, newModel(opts, sample), pressKey(tea.KeyCtrlA), pressKey(tea.KeyCtrlD), pressKey(tea.KeyEnter))
	if !reflect.DeepEqual(m.result, []string{"bash  100"}) {
		t.Fatalf("after deselect-all result = %q", m.result)
	}
}

func TestModel_NoSortKeepsInputOrder(t *testing.T) {
	lines := []string{"xxb  1", "b  2"}
	m := send(t, newModel(Resolve([]string{"--no-sort"}), lines), typeText("b"))
	if len(m.matches) != 2 || m.matches[0].item != 0 || m.matches[1].item != 1 {
		t.Fatalf("matches = %+v", m.matches)
	}
}

func TestModel_ClearQuery(t *testing.T) {
	opts := Resolve([]string{"--bind=ctrl-u:clear-query"})
	m := send(t, newModel(opts, sample), typeText("vim"), pressKey(tea.KeyCtrlU))
	if m.input.Value() != "" || len(m.matches) != len(sample) {
		t.Fatalf("query=%q matches=%d", m.input.Value(), len(m.matches))
	}
}

func TestModel_DefaultLayoutMovesAwayFromPrompt(t *testing.T) {
	opts := Defaults()
	opts.Reverse = false
	m := send(t, newModel(opts, sample), pressKey(tea.KeyUp), pressKey(tea.KeyEnter))
	if !reflect.DeepEqual(m.result, []string{" vim  200"}) {
		t.Fatalf("result = %q", m.result)
	}
}

func TestModel_View(t *testing.T) {
	t.Run("reverse puts prompt on top", func(t *testing.T) {
		m := send(t, newModel(Defaults(), sample), tea.WindowSizeMsg{Width: 60, Height: 20})
		lines := strings.Split(m.View(), "\n")
		if !strings.Contains(lines[0], ">") || !strings.Contains(lines[1], "3/3") {
			t.Fatalf("unexpected header %q", lines[:2])
		}
		if !strings.Contains(lines[2], "bash") {
			t.Fatalf("first candidate should follow the info line: %q", lines[2])
		}
	})

	t.Run("default layout puts prompt at the bottom", func(t *testing.T) {
		opts := Defaults()
		opts.Reverse = false
		m := send(t, newModel(opts, sample), tea.WindowSizeMsg{Width: 60, Height: 20})
		lines := strings.Split(m.View(), "\n")
		n := len(lines)
		if !strings.Contains(lines[n-2], "3/3") || !strings.Contains(lines[n-3], "bash") {
			t.Fatalf("unexpected bottom %q", lines[n-3:])
		}
	})

	t.Run("inline info and selection counter", func(t *testing.T) {
		m := send(t, newModel(Resolve([]string{"--inline-info"}), sample),
			tea.WindowSizeMsg{Width: 60, Height: 20}, pressKey(tea.KeyTab))
		lines := strings.Split(m.View(), "\n")
		if !strings.Contains(lines[0], "3/3 (1)") {
			t.Fatalf("info not inline: %q", lines[0])
		}
	})

	t.Run("height bounds the candidate rows", func(t *testing.T) {
		many := make([]string, 50)
		for i := range many {
			many[i] = "proc  " + strings.Repeat("1", i%5+1)
		}
		m := send(t, newModel(Resolve([]string{"--height=10"}), many), tea.WindowSizeMsg{Width: 60, Height: 40})
		if got := len(strings.Split(m.View(), "\n")); got != 10 {
			t.Fatalf("rendered %d rows, want 10", got)
		}
	})
}

func TestModel_ScrollFollowsCursor(t *testing.T) {
	many := make([]string, 30)
	for i := range many {
		many[i] = "p  " + strings.Repeat("9", i%4+1)
	}
	m := send(t, newModel(Resolve([]string{"--height=5"}), many), tea.WindowSizeMsg{Width: 40, Height: 40})
	for i := 0; i < 10; i++ {
		m = send(t, m, pressKey(tea.KeyDown))
	}
	if m.cursor != 10 || m.offset != 10-m.listRows()+1 {
		t.Fatalf("cursor=%d offset=%d rows=%d", m.cursor, m.offset, m.listRows())
	}
}
