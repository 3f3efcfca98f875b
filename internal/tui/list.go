package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheuskafuri/newsassist/internal/api"
	"github.com/matheuskafuri/newsassist/internal/textutil"
)

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown date"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func renderListItem(a api.Article, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + textutil.Truncate(a.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + textutil.Truncate(a.Title, width-4))
	}

	meta := "  " + itemSourceStyle.Render(a.SourceName) + " " + itemTimeStyle.Render("· "+relativeTime(a.Published()))

	return title + "\n" + meta
}

// renderList draws a scrolling window of articles around cursor. empty is
// shown when there are no articles.
func renderList(articles []api.Article, cursor int, height int, width int, empty string) string {
	if len(articles) == 0 {
		return lipglossCenter(empty, width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start, end := window(len(articles), cursor, visible)

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(articles[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// window returns the [start,end) slice of n items that keeps cursor visible.
func window(n, cursor, visible int) (int, int) {
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > n {
		end = n
		start = max(0, end-visible)
	}
	return start, end
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
