package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorError = lipgloss.Color("#EF4444") // red
	colorValue = lipgloss.Color("#60A5FA") // blue
	colorMuted = lipgloss.Color("#6B7280") // gray
)

// palette renders REPL output. With color off every method is the identity.
// Lines are styled one at a time; lipgloss pads a multi-line block to its
// widest line otherwise.
type palette struct {
	color bool
	err   lipgloss.Style
	value lipgloss.Style
	muted lipgloss.Style
}

func newPalette(color bool) palette {
	return palette{
		color: color,
		err:   lipgloss.NewStyle().Foreground(colorError),
		value: lipgloss.NewStyle().Foreground(colorValue),
		muted: lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	}
}

func (p palette) Error(s string) string { return p.render(p.err, s) }
func (p palette) Value(s string) string { return p.render(p.value, s) }
func (p palette) Muted(s string) string { return p.render(p.muted, s) }

func (p palette) render(st lipgloss.Style, s string) string {
	if !p.color || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		if ln != "" {
			lines[i] = st.Render(ln)
		}
	}
	return strings.Join(lines, "\n")
}
