package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphs maps digits and the colon to three rows of half-block art.
var glyphs = map[rune][3]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {"▄█ ", " █ ", "▀▀▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	':': {" ", "▀", "▀"},
}

// bigTimeWidth returns the rendered width of timeStr in glyph columns.
func bigTimeWidth(timeStr string) int {
	width := 0
	for _, ch := range timeStr {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		if width > 0 {
			width++
		}
		width += lipgloss.Width(glyph[0])
	}
	return width
}

// renderBigTime renders a clock string such as "24:59" in large digits.
// When the terminal is too narrow it falls back to a single bold line.
func renderBigTime(timeStr string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	if width < bigTimeWidth(timeStr)+4 {
		return style.Render(timeStr)
	}

	var rows [3]strings.Builder
	first := true
	for _, ch := range timeStr {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		for i := range rows {
			if !first {
				rows[i].WriteByte(' ')
			}
			rows[i].WriteString(glyph[i])
		}
		first = false
	}

	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = style.Render(rows[i].String())
	}
	return strings.Join(lines, "\n")
}
