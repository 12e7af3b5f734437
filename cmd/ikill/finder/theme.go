package finder

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme maps UI regions to colors.
type Theme struct {
	palette map[string]lipgloss.Color
	mono    bool
}

// region aliases accepted in addition to the canonical names.
var regionAliases = map[string]string{
	"hl":      "matched",
	"fg+":     "current",
	"bg+":     "current_bg",
	"hl+":     "current_match",
	"pointer": "cursor",
	"marker":  "selected",
}

var regions = map[string]bool{
	"fg": true, "bg": true,
	"matched": true, "matched_bg": true,
	"current": true, "current_bg": true,
	"current_match": true, "current_match_bg": true,
	"spinner": true, "info": true, "prompt": true, "cursor": true,
	"selected": true, "header": true, "border": true,
}

var basePalettes = map[string]map[string]lipgloss.Color{
	"dark": {
		"matched": "108", "matched_bg": "0",
		"current": "254", "current_bg": "236",
		"current_match": "151", "current_match_bg": "236",
		"spinner": "148", "info": "144", "prompt": "110",
		"cursor": "161", "selected": "168", "header": "109", "border": "59",
	},
	"light": {
		"matched": "66", "matched_bg": "251",
		"current": "237", "current_bg": "251",
		"current_match": "23", "current_match_bg": "251",
		"spinner": "65", "info": "101", "prompt": "25",
		"cursor": "161", "selected": "168", "header": "31", "border": "145",
	},
}

// ParseTheme reads a comma-separated list of region:color pairs. A bare word
// selects a base scheme (dark, light, bw) that later pairs refine. Unknown
// regions and empty colors are ignored.
func ParseTheme(spec string) Theme {
	t := Theme{palette: copyPalette(basePalettes["dark"])}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		region, color, ok := strings.Cut(part, ":")
		if !ok {
			switch part {
			case "bw", "none":
				t.mono = true
				t.palette = map[string]lipgloss.Color{}
			default:
				if base, known := basePalettes[part]; known {
					t.mono = false
					t.palette = copyPalette(base)
				}
			}
			continue
		}
		region = strings.TrimSpace(region)
		if alias, isAlias := regionAliases[region]; isAlias {
			region = alias
		}
		color = strings.TrimSpace(color)
		if !regions[region] || color == "" {
			continue
		}
		t.palette[region] = lipgloss.Color(color)
	}
	return t
}

func copyPalette(p map[string]lipgloss.Color) map[string]lipgloss.Color {
	out := make(map[string]lipgloss.Color, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Color returns the color set for region, if any.
func (t Theme) Color(region string) (lipgloss.Color, bool) {
	c, ok := t.palette[region]
	return c, ok
}

func (t Theme) style(fg, bg string) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c, ok := t.palette[fg]; ok {
		s = s.Foreground(c)
	}
	if c, ok := t.palette[bg]; ok {
		s = s.Background(c)
	}
	return s
}

type styles struct {
	text         lipgloss.Style
	matched      lipgloss.Style
	current      lipgloss.Style
	currentMatch lipgloss.Style
	info         lipgloss.Style
	prompt       lipgloss.Style
	cursor       lipgloss.Style
	selected     lipgloss.Style
	header       lipgloss.Style
	border       lipgloss.Style
}

func (t Theme) styles() styles {
	s := styles{
		text:         t.style("fg", "bg"),
		matched:      t.style("matched", "matched_bg"),
		current:      t.style("current", "current_bg"),
		currentMatch: t.style("current_match", "current_match_bg"),
		info:         t.style("info", ""),
		prompt:       t.style("prompt", ""),
		cursor:       t.style("cursor", "current_bg"),
		selected:     t.style("selected", ""),
		header:       t.style("header", ""),
		border:       t.style("border", ""),
	}
	if t.mono {
		s.matched = s.matched.Underline(true)
		s.current = s.current.Reverse(true)
		s.currentMatch = s.currentMatch.Reverse(true).Underline(true)
		s.cursor = s.cursor.Bold(true)
	}
	return s
}
