package finder

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type action string

const (
	actUp          action = "up"
	actDown        action = "down"
	actPageUp      action = "page-up"
	actPageDown    action = "page-down"
	actFirst       action = "first"
	actLast        action = "last"
	actToggle      action = "toggle"
	actToggleAll   action = "toggle-all"
	actSelectAll   action = "select-all"
	actDeselectAll action = "deselect-all"
	actToggleSort  action = "toggle-sort"
	actClearQuery  action = "clear-query"
	actAccept      action = "accept"
	actAbort       action = "abort"
	actIgnore      action = "ignore"
)

var knownActions = map[action]bool{
	actUp: true, actDown: true, actPageUp: true, actPageDown: true,
	actFirst: true, actLast: true,
	actToggle: true, actToggleAll: true, actSelectAll: true, actDeselectAll: true,
	actToggleSort: true, actClearQuery: true,
	actAccept: true, actAbort: true, actIgnore: true,
}

// binding ties one key to a chain of actions.
type binding struct {
	key.Binding
	actions []action
}

func newBinding(actions []action, keys ...string) binding {
	return binding{Binding: key.NewBinding(key.WithKeys(keys...)), actions: actions}
}

// defaultBindings is the built-in keymap. Tab marks and moves down like fzf.
func defaultBindings() []binding {
	return []binding{
		newBinding([]action{actUp}, "up", "ctrl+k", "ctrl+p"),
		newBinding([]action{actDown}, "down", "ctrl+j", "ctrl+n"),
		newBinding([]action{actPageUp}, "pgup"),
		newBinding([]action{actPageDown}, "pgdown"),
		newBinding([]action{actToggle, actDown}, "tab"),
		newBinding([]action{actToggle, actUp}, "shift+tab"),
		newBinding([]action{actAccept}, "enter"),
		newBinding([]action{actAbort}, "esc", "ctrl+c", "ctrl+g", "ctrl+q"),
	}
}

// keymap resolves key presses, user bindings first.
type keymap struct {
	bindings []binding
}

func newKeymap(binds []string) keymap {
	km := keymap{bindings: parseBindings(binds)}
	km.bindings = append(km.bindings, defaultBindings()...)
	return km
}

func (km keymap) lookup(k string) ([]action, bool) {
	for _, b := range km.bindings {
		for _, bk := range b.Keys() {
			if bk == k {
				return b.actions, true
			}
		}
	}
	return nil, false
}

// parseBindings reads "key:action[+action...]" pairs separated by commas.
// Pairs with an unknown key spelling or no known action are dropped.
func parseBindings(binds []string) []binding {
	var out []binding
	for _, spec := range binds {
		for _, pair := range strings.Split(spec, ",") {
			k, chain, ok := strings.Cut(strings.TrimSpace(pair), ":")
			if !ok {
				continue
			}
			name := keyName(k)
			if name == "" {
				continue
			}
			var actions []action
			for _, a := range strings.Split(chain, "+") {
				a := action(strings.ToLower(strings.TrimSpace(a)))
				if knownActions[a] {
					actions = append(actions, a)
				}
			}
			if len(actions) == 0 {
				continue
			}
			out = append(out, newBinding(actions, name))
		}
	}
	return out
}

var namedKeys = map[string]string{
	"enter":  "enter",
	"return": "enter",
	"esc":    "esc",
	"tab":    "tab",
	"btab":   "shift+tab",
	"bspace": "backspace",
	"bs":     "backspace",
	"del":    "delete",
	"up":     "up",
	"down":   "down",
	"left":   "left",
	"right":  "right",
	"home":   "home",
	"end":    "end",
	"pgup":   "pgup",
	"pgdn":   "pgdown",
	"space":  " ",
}

// keyName converts a skim/fzf key spelling to the bubbletea key string.
func keyName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, ok := namedKeys[s]; ok {
		return n
	}
	for _, mod := range []string{"ctrl", "alt"} {
		if rest, ok := strings.CutPrefix(s, mod+"-"); ok {
			if len([]rune(rest)) == 1 {
				return mod + "+" + rest
			}
			if n, ok := namedKeys[rest]; ok && mod == "alt" {
				return mod + "+" + n
			}
			return ""
		}
	}
	if len([]rune(s)) == 1 {
		return s
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(s, "f")); err == nil && s[0] == 'f' && n >= 1 && n <= 20 {
		return s
	}
	return ""
}
