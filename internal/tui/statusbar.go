package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type statusInfo struct {
	count    int
	category string
	search   string
	loading  string
	err      string
	hints    string
}

func renderStatusBar(s statusInfo, width int) string {
	left := fmt.Sprintf(" %d articles", s.count)
	if s.category != "" {
		left += " · " + s.category
	}
	if s.search != "" {
		left += " · " + searchPromptStyle.Render("/"+s.search)
	}
	if s.loading != "" {
		left += " " + s.loading
	}
	if s.err != "" {
		left += " " + errorStyle.Render(s.err)
	}

	return statusBarStyle.Width(width).Render(spread(left, " "+s.hints+" ", width))
}

func renderBottomBar(left, hints string, width int) string {
	return statusBarStyle.Width(width).Render(spread(left, " "+hints+" ", width))
}

func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 0 {
		gap = 0
	}
	return left + fmt.Sprintf("%*s", gap, "") + right
}
