package tui

import (
	"fmt"
	"strings"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/textutil"
	"github.com/matheuskafuri/newsassist/internal/view"
)

func renderTrending(state view.State[[]api.TrendingTopic], days, cursor int, spin string, width, height int) string {
	var lines []string
	lines = append(lines, "  "+sectionTitleStyle.Render("Trending Topics"))
	lines = append(lines, "  "+metaStyle.Render(fmt.Sprintf("Last %d days", days)), "")

	switch state.Status {
	case view.Loading:
		lines = append(lines, "  "+spin+" "+metaStyle.Render("Loading trending topics..."))
	case view.Failed:
		lines = append(lines, "  "+errorStyle.Render(state.Message()))
	case view.Succeeded:
		if len(state.Data) == 0 {
			lines = append(lines, "  "+helpDimStyle.Render("No trending topics found"))
			break
		}
		visible := height - len(lines)
		if visible < 1 {
			visible = 1
		}
		start, end := window(len(state.Data), cursor, visible)
		for i := start; i < end; i++ {
			lines = append(lines, renderTopicRow(state.Data[i], i, i == cursor, width))
		}
	}

	return clip(strings.Join(lines, "\n"), height, 0)
}

func renderTopicRow(t api.TrendingTopic, i int, selected bool, width int) string {
	rank := fmt.Sprintf("%-4s", view.RankLabel(i))
	band := view.ScoreBand(t.AvgTrendScore)
	score := bandStyle(band).Render(fmt.Sprintf("%7s", view.ScorePercent(t.AvgTrendScore)))
	count := metaStyle.Render(fmt.Sprintf("%4d articles", t.TotalArticles))

	name := textutil.Truncate(t.Topic, width-30)
	if selected {
		name = itemSelectedStyle.Render("> " + name)
	} else {
		name = itemTitleStyle.Render("  " + name)
	}
	return fmt.Sprintf("  %s %s  %s  %s", rank, score, count, name)
}
