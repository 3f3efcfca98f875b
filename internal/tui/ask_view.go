package tui

import (
	"fmt"
	"strings"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/textutil"
	"github.com/matheuskafuri/newsassist/internal/view"
)

type askModel struct {
	state     view.State[*api.QueryResponse]
	provider  api.Provider
	input     string
	examples  []api.ExampleQuery
	sourceIdx int
	spinner   string
}

func renderAsk(m askModel, width, height int) string {
	textWidth := width - 4
	if textWidth < 20 {
		textWidth = 20
	}

	var lines []string
	lines = append(lines, "  "+sectionTitleStyle.Render("Ask AI about the news"))
	lines = append(lines, "  "+metaStyle.Render("Provider: ")+itemSourceStyle.Render(string(m.provider)), "")
	lines = append(lines, "  "+m.input, "")

	switch m.state.Status {
	case view.Idle:
		lines = append(lines, renderExamples(m.examples, textWidth)...)
	case view.Loading:
		lines = append(lines, "  "+m.spinner+" "+metaStyle.Render("Searching the news..."))
	case view.Failed:
		lines = append(lines, "  "+errorStyle.Render(m.state.Message()))
	case view.Succeeded:
		lines = append(lines, renderAnswer(m.state.Data, m.sourceIdx, textWidth)...)
	}

	return clip(strings.Join(lines, "\n"), height, 0)
}

func renderExamples(examples []api.ExampleQuery, width int) []string {
	if len(examples) == 0 {
		return nil
	}
	lines := []string{"  " + metaStyle.Render("Try asking (ctrl+e cycles examples):")}
	for _, group := range examples {
		lines = append(lines, "  "+itemSourceStyle.Render(group.Category))
		for _, q := range group.Queries {
			lines = append(lines, "    "+metaStyle.Render("· "+textutil.Truncate(q, width-6)))
		}
	}
	return lines
}

func renderAnswer(resp *api.QueryResponse, cursor, width int) []string {
	if resp == nil {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(wrapText(resp.Answer, width), "\n") {
		lines = append(lines, "  "+bodyStyle.Render(l))
	}
	lines = append(lines, "")

	if len(resp.Articles) == 0 {
		return append(lines, "  "+helpDimStyle.Render("No source articles"))
	}
	lines = append(lines, "  "+sectionTitleStyle.Render(fmt.Sprintf("Sources (%d)", len(resp.Articles))))
	for i, a := range resp.Articles {
		match := ""
		if a.Similarity != nil {
			match = fmt.Sprintf(" · %.0f%% match", *a.Similarity*100)
		}
		title := textutil.Truncate(a.Title, width-24)
		if i == cursor {
			lines = append(lines, "  "+itemSelectedStyle.Render("> "+title)+metaStyle.Render(match))
		} else {
			lines = append(lines, "    "+itemTitleStyle.Render(title)+metaStyle.Render(match))
		}
		lines = append(lines, "    "+itemSourceStyle.Render(a.SourceName)+metaStyle.Render(" · "+relativeTime(a.Published())))
	}
	return lines
}
