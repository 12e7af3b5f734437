package finder

import (
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
)

// fallbackHeight is used until the terminal reports its size.
const fallbackHeight = 24

type item struct {
	text  string
	plain string
}

type match struct {
	item      int
	positions []int
}

type model struct {
	opts   Options
	styles styles
	keys   keymap
	input  textinput.Model

	items   []item
	plain   []string
	matches []match
	cursor  int
	offset  int
	marked  map[int]bool
	order   []int
	sorting bool

	width  int
	height int

	result   []string
	aborted  bool
	quitting bool
}

func newModel(opts Options, lines []string) model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()

	m := model{
		opts:    opts,
		styles:  ParseTheme(opts.Color).styles(),
		keys:    newKeymap(opts.Bind),
		input:   ti,
		marked:  make(map[int]bool),
		sorting: !opts.NoSort,
	}
	m.input.PromptStyle = m.styles.prompt

	for _, i := range ordered(len(lines), opts.Tac) {
		plain := ansi.Strip(lines[i])
		m.items = append(m.items, item{text: lines[i], plain: plain})
		m.plain = append(m.plain, plain)
	}
	m.refilter()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
		return m, nil
	case tea.KeyMsg:
		if actions, ok := m.keys.lookup(msg.String()); ok {
			return m.apply(actions)
		}
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != prev {
		m.refilter()
		m.cursor, m.offset = 0, 0
	}
	return m, cmd
}

func (m model) apply(actions []action) (tea.Model, tea.Cmd) {
	for _, a := range actions {
		switch a {
		case actUp:
			m.move(m.upStep())
		case actDown:
			m.move(-m.upStep())
		case actPageUp:
			m.move(m.upStep() * m.listRows())
		case actPageDown:
			m.move(-m.upStep() * m.listRows())
		case actFirst:
			m.cursor = 0
		case actLast:
			m.cursor = max(len(m.matches)-1, 0)
		case actToggle:
			if mt, ok := m.current(); ok && m.opts.Multi {
				m.toggle(mt.item)
			}
		case actToggleAll:
			if m.opts.Multi {
				for _, mt := range m.matches {
					m.toggle(mt.item)
				}
			}
		case actSelectAll:
			if m.opts.Multi {
				for _, mt := range m.matches {
					m.mark(mt.item)
				}
			}
		case actDeselectAll:
			for _, mt := range m.matches {
				m.unmark(mt.item)
			}
		case actToggleSort:
			m.sorting = !m.sorting
			m.refilter()
		case actClearQuery:
			m.input.SetValue("")
			m.refilter()
			m.cursor, m.offset = 0, 0
		case actAccept:
			m.accept()
			return m, tea.Quit
		case actAbort:
			m.aborted = true
			m.quitting = true
			return m, tea.Quit
		}
	}
	m.scroll()
	return m, nil
}

// upStep is the cursor delta for a visual move up. In the default layout the
// best match sits next to the prompt at the bottom, so up walks away from it.
func (m model) upStep() int {
	if m.opts.EffectiveLayout() == LayoutDefault {
		return 1
	}
	return -1
}

func (m *model) move(delta int) {
	if len(m.matches) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.matches)-1)
}

func (m model) current() (match, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return match{}, false
	}
	return m.matches[m.cursor], true
}

func (m *model) toggle(i int) {
	if m.marked[i] {
		m.unmark(i)
		return
	}
	m.mark(i)
}

func (m *model) mark(i int) {
	if m.marked[i] {
		return
	}
	m.marked[i] = true
	m.order = append(m.order, i)
}

func (m *model) unmark(i int) {
	if !m.marked[i] {
		return
	}
	delete(m.marked, i)
	m.order = slices.DeleteFunc(m.order, func(j int) bool { return j == i })
}

// accept fixes the result: marked lines in marking order, else the line
// under the cursor, else nothing.
func (m *model) accept() {
	m.quitting = true
	if len(m.order) > 0 {
		m.result = make([]string, len(m.order))
		for k, i := range m.order {
			m.result[k] = m.items[i].text
		}
		return
	}
	if mt, ok := m.current(); ok {
		m.result = []string{m.items[mt.item].text}
	}
}

func (m *model) refilter() {
	q := m.input.Value()
	var matches []match
	if q == "" {
		for i := range m.items {
			matches = append(matches, match{item: i})
		}
	} else {
		for _, fm := range fuzzy.Find(q, m.plain) {
			matches = append(matches, match{item: fm.Index, positions: fm.MatchedIndexes})
		}
		if !m.sorting {
			slices.SortStableFunc(matches, func(a, b match) int { return a.item - b.item })
		}
	}
	m.matches = matches
	m.move(0)
}

// rows is the total number of terminal rows the surface draws.
func (m model) rows() int {
	h := m.height
	if h <= 0 {
		h = fallbackHeight
	}
	if m.opts.FullScreen() {
		return h
	}
	return m.opts.Rows(h)
}

// listRows is how many candidates fit once margins, prompt and info are
// accounted for.
func (m model) listRows() int {
	rows := m.rows()
	mg := m.opts.Margins(m.width, rows)
	chrome := 2
	if m.opts.InlineInfo {
		chrome = 1
	}
	return max(rows-mg.top-mg.bottom-chrome, 1)
}

// scroll keeps the cursor inside the visible window.
func (m *model) scroll() {
	n := m.listRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+n {
		m.offset = m.cursor - n + 1
	}
	m.offset = max(m.offset, 0)
}
