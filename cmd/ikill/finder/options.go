package finder

import (
	"fmt"
	"strings"

	shlex "github.com/anmitsu/go-shlex"
)

// EnvOptions names the environment variable holding default overrides.
const EnvOptions = "SKIM_DEFAULT_OPTIONS"

const (
	DefaultMargin = "0%"
	DefaultHeight = "50%"
	DefaultLayout = LayoutDefault
	DefaultTheme  = "matched:108,matched_bg:0,current:254,current_bg:236,current_match:151," +
		"current_match_bg:236,spinner:148,info:144,prompt:110,cursor:161,selected:168,header:109,border:59"
)

// Layout controls where the prompt sits relative to the list.
type Layout string

const (
	LayoutDefault     Layout = "default"
	LayoutReverse     Layout = "reverse"
	LayoutReverseList Layout = "reverse-list"
)

// Options is the resolved surface configuration.
type Options struct {
	Margin     string
	Height     string
	Layout     Layout
	Color      string
	Bind       []string
	Reverse    bool
	Tac        bool
	NoSort     bool
	InlineInfo bool
	Multi      bool
}

// Defaults returns the configuration used when no override is given.
func Defaults() Options {
	return Resolve(nil)
}

// Resolve builds Options from override tokens. Reverse rendering and
// multi-selection are always on, whatever the tokens say.
func Resolve(tokens []string) Options {
	color := stringOption(tokens, "--color", DefaultTheme, func(v string) bool {
		return !strings.Contains(v, "{}")
	})
	return Options{
		Margin:     stringOption(tokens, "--margin", DefaultMargin, nil),
		Height:     stringOption(tokens, "--height", DefaultHeight, nil),
		Layout:     Layout(stringOption(tokens, "--layout", string(DefaultLayout), nil)),
		Color:      color,
		Bind:       allOptions(tokens, "--bind"),
		Reverse:    true,
		Tac:        hasFlag(tokens, "--tac"),
		NoSort:     hasFlag(tokens, "--no-sort"),
		InlineInfo: hasFlag(tokens, "--inline-info"),
		Multi:      true,
	}
}

// EffectiveLayout is the layout actually drawn. Reverse wins over Layout.
func (o Options) EffectiveLayout() Layout {
	if o.Reverse {
		return LayoutReverse
	}
	switch o.Layout {
	case LayoutReverse, LayoutReverseList:
		return o.Layout
	}
	return LayoutDefault
}

// SplitOptions splits a shell-style option string into tokens.
func SplitOptions(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	tokens, err := shlex.Split(s, true)
	if err != nil {
		return nil, fmt.Errorf("parsing options %q: %w", s, err)
	}
	return tokens, nil
}

// stringOption returns the value of the first "--flag=value" token, else the
// token after the first standalone "--flag", else def. accept, when set,
// filters "--flag=value" candidates.
func stringOption(tokens []string, flag, def string, accept func(string) bool) string {
	prefix := flag + "="
	for _, tok := range tokens {
		if v, ok := strings.CutPrefix(tok, prefix); ok {
			if accept == nil || accept(v) {
				return v
			}
		}
	}
	for i, tok := range tokens {
		if tok == flag && i+1 < len(tokens) {
			return tokens[i+1]
		}
	}
	return def
}

// allOptions collects the value of every occurrence of flag, in order.
func allOptions(tokens []string, flag string) []string {
	prefix := flag + "="
	var out []string
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if v, ok := strings.CutPrefix(tok, prefix); ok {
			out = append(out, v)
			continue
		}
		if tok == flag && i+1 < len(tokens) {
			out = append(out, tokens[i+1])
			i++
		}
	}
	return out
}

func hasFlag(tokens []string, flag string) bool {
	for _, tok := range tokens {
		if tok == flag {
			return true
		}
	}
	return false
}
