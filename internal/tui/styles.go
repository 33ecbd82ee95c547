package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	selectedCardStyle = lipgloss.NewStyle().
				Bold(true).
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("#5B8DEF")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Padding(0, 0, 1, 0)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F7B801"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	quoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#A0AEC0"))

	dropCapStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F7B801"))

	editedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50"))
)

// dropCap renders prose with its first grapheme emphasized and the remainder
// as plain body text. Grapheme-aware so emoji and CJK leads stay intact.
func dropCap(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	first, rest, _, _ := uniseg.FirstGraphemeClusterInString(text, -1)
	return dropCapStyle.Render(first) + rest
}

// truncate shortens a line to the given display width, ellipsis included.
func truncate(text string, width int) string {
	if width <= 0 {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}
