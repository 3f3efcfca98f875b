package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/view"
)

func renderCollector(state view.State[*api.CollectionResponse], input, spin string, polling bool, pollErr error, width, height int) string {
	var lines []string
	lines = append(lines, sectionTitleStyle.Render("Collect News"))
	lines = append(lines, metaStyle.Render("Comma-separated topics, or leave empty for the default set"), "")
	lines = append(lines, input, "")

	switch state.Status {
	case view.Loading:
		lines = append(lines, spin+" "+metaStyle.Render("Collecting..."))
	case view.Failed:
		lines = append(lines, errorStyle.Render(state.Message()))
	case view.Succeeded:
		lines = append(lines, renderCollectResult(state.Data)...)
		switch {
		case pollErr != nil:
			lines = append(lines, errorStyle.Render(pollErr.Error()))
		case polling:
			lines = append(lines, spin+" "+metaStyle.Render("Waiting for the collection run to finish..."))
		default:
			lines = append(lines, lipgloss.NewStyle().Foreground(colorGreen).Render("Collection finished"))
		}
	}

	box := dialogStyle.Width(min(width-4, 70)).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func renderCollectResult(resp *api.CollectionResponse) []string {
	if resp == nil {
		return nil
	}
	lines := []string{bodyStyle.Render(resp.Message)}
	if s := resp.Stats; s != nil {
		lines = append(lines, metaStyle.Render(fmt.Sprintf("%d new of %d articles", s.NewArticles, s.TotalArticles)))
		if len(s.Sources) > 0 {
			lines = append(lines, metaStyle.Render("Sources: "+strings.Join(s.Sources, ", ")))
		}
	}
	return append(lines, "")
}
