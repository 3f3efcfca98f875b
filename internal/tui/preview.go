package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/textutil"
)

func renderPreview(article *api.Article, width, height, scroll int) string {
	if article == nil {
		return lipglossCenter("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(article.Title)

	date := "unknown date"
	if t := article.Published(); !t.IsZero() {
		date = t.Format("Jan 2, 2006")
	}
	meta := previewSourceStyle.Render(fmt.Sprintf("%s · %s · %s", article.SourceName, article.CategoryName, date))
	sentiment := article.Sentiment()
	mood := sentimentStyle(sentiment).Render(string(sentiment))
	if article.Author != "" {
		mood = metaStyle.Render("by "+article.Author+" · ") + mood
	}

	desc := textutil.PlainText(article.Description)
	if desc == "" {
		desc = textutil.PlainText(article.Content)
	}
	if desc == "" {
		desc = "(No description available)"
	}

	body := previewBodyStyle.Width(contentWidth).Render(wrapText(desc, contentWidth))
	link := previewLinkStyle.Width(contentWidth).Render("Read more: " + article.URL)

	content := lipgloss.JoinVertical(lipgloss.Left, title, meta, mood, "", body, "", link)
	return clip(content, height, scroll)
}

// clip applies a scroll offset and pads or cuts content to height lines.
func clip(content string, height, scroll int) string {
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
