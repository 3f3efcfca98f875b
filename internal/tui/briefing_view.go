package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/newsassist/internal/briefing"
	"github.com/matheuskafuri/newsassist/internal/textutil"
)

var (
	briefingTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	briefingCardStyle  = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorBorder).
				Padding(0, 1)
	briefingCardActiveStyle = briefingCardStyle.BorderForeground(colorActiveBdr)
)

func renderBriefingHeader(d briefing.Digest) string {
	category := d.Category
	if category == "" {
		category = "All Categories"
	}
	title := briefingTitleStyle.Render(fmt.Sprintf("%s · %s", d.Greeting, d.DateLabel))
	meta := metaStyle.Render(fmt.Sprintf("%s · %s", briefing.TimeframeLabel(d.Timeframe), category))
	return "  " + title + "\n  " + meta
}

// renderDigest draws the summary, headline counts and the card under cursor
// with its neighbours.
func renderDigest(d briefing.Digest, cursor, width, height int) string {
	textWidth := width - 4
	if textWidth < 20 {
		textWidth = 20
	}

	var lines []string
	lines = append(lines, renderBriefingHeader(d), "")

	if d.Summary != "" {
		for _, l := range strings.Split(wrapText(d.Summary, textWidth), "\n") {
			lines = append(lines, "  "+bodyStyle.Render(l))
		}
		lines = append(lines, "")
	}

	stats := fmt.Sprintf("Articles: %d", d.ArticleCount)
	if d.ActiveSources != "" {
		stats += " · Most active: " + d.ActiveSources
	}
	lines = append(lines, "  "+metaStyle.Render(stats))
	if len(d.Themes) > 0 {
		lines = append(lines, "  "+metaStyle.Render("Themes: "+strings.Join(d.Themes, ", ")))
	}
	lines = append(lines, "")

	if len(d.Cards) == 0 {
		lines = append(lines, "  "+helpDimStyle.Render("No articles in this briefing"))
		return clip(strings.Join(lines, "\n"), height, 0)
	}

	header := strings.Join(lines, "\n")
	headerLines := len(lines)

	// Each card box is 4 lines tall.
	visible := (height - headerLines) / 4
	if visible < 1 {
		visible = 1
	}
	start, end := window(len(d.Cards), cursor, visible)

	var cards []string
	for i := start; i < end; i++ {
		cards = append(cards, renderCard(d.Cards[i], len(d.Cards), i == cursor, textWidth))
	}
	return clip(header+"\n"+strings.Join(cards, "\n"), height, 0)
}

func renderCard(c briefing.Card, total int, selected bool, width int) string {
	style := briefingCardStyle
	if selected {
		style = briefingCardActiveStyle
	}

	title := textutil.Truncate(c.Article.Title, width-12)
	head := fmt.Sprintf("%d/%d  ", c.Index, total)
	if selected {
		head = itemSelectedStyle.Render(head + title)
	} else {
		head = metaStyle.Render(head) + itemTitleStyle.Render(title)
	}

	meta := itemSourceStyle.Render(c.Article.SourceName) +
		metaStyle.Render(fmt.Sprintf(" · %s · %d min", c.Article.CategoryName, c.ReadingTime))
	excerpt := metaStyle.Render(textutil.Truncate(c.Excerpt, width-4))

	box := style.Width(width).Render(head + "\n" + meta + "\n" + excerpt)
	var out []string
	for _, l := range strings.Split(box, "\n") {
		out = append(out, "  "+l)
	}
	return strings.Join(out, "\n")
}
