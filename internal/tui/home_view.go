package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/newsassist/internal/api"
)

var asciiLogo = []string{
	`███╗   ██╗███████╗██╗    ██╗███████╗`,
	`████╗  ██║██╔════╝██║    ██║██╔════╝`,
	`██╔██╗ ██║█████╗  ██║ █╗ ██║███████╗`,
	`██║╚██╗██║██╔══╝  ██║███╗██║╚════██║`,
	`██║ ╚████║███████╗╚███╔███╔╝███████║`,
	`╚═╝  ╚═══╝╚══════╝ ╚══╝╚══╝ ╚══════╝`,
}

type menuItem struct {
	key   string
	label string
}

var homeMenu = []menuItem{
	{"f", "News Feed"},
	{"a", "Ask AI about the news"},
	{"t", "Trending Topics"},
	{"b", "Briefing"},
	{"c", "Collect News"},
}

func renderHomeScreen(width, height int, baseURL string, health *api.Health, healthErr error) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorAccent)
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colorText)

	var lines []string
	for _, l := range asciiLogo {
		lines = append(lines, logoStyle.Render(l))
	}
	lines = append(lines, helpDimStyle.Render("news, answered"), "", "")

	for _, m := range homeMenu {
		lines = append(lines, "    "+keyStyle.Render("["+m.key+"]")+"  "+labelStyle.Render(m.label))
	}
	lines = append(lines, "")
	lines = append(lines, "    "+keyStyle.Render("[q]")+"  "+labelStyle.Render("Quit"))
	lines = append(lines, "", "", renderHealth(baseURL, health, healthErr))

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}

func renderHealth(baseURL string, health *api.Health, err error) string {
	switch {
	case err != nil:
		return errorStyle.Render("● "+baseURL) + helpDimStyle.Render("  "+err.Error())
	case health == nil:
		return helpDimStyle.Render("○ " + baseURL + "  checking...")
	default:
		label := health.Status
		if health.Environment != "" {
			label += " · " + health.Environment
		}
		return lipgloss.NewStyle().Foreground(colorGreen).Render("● "+baseURL) + helpDimStyle.Render("  "+label)
	}
}
